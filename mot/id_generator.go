package mot

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

const idPrefix = "obj_"

// IDGenerator produces identifiers for spawned tracks. Identifiers must never repeat.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random identifiers based on UUID v4
type UUIDGenerator struct{}

// NewID returns new random identifier
func (UUIDGenerator) NewID() string {
	return idPrefix + uuid.NewString()
}

// SequentialGenerator generates monotonic identifiers: obj_1, obj_2, ...
type SequentialGenerator struct {
	mu   sync.Mutex
	next uint64
}

// NewSequentialGenerator creates generator starting from obj_1
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{}
}

// NewID returns next identifier
func (gen *SequentialGenerator) NewID() string {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	gen.next++
	return idPrefix + strconv.FormatUint(gen.next, 10)
}
