package monitor

import (
	"strings"
	"time"

	"github.com/LdDl/presence-go/mot"
)

// AlertKind is kind of presence alert
type AlertKind uint16

const (
	// AlertNewObject is raised while some object is new
	AlertNewObject AlertKind = iota
	// AlertMissingObject is raised while some object is missing
	AlertMissingObject
)

func (kind AlertKind) String() string {
	if kind == AlertMissingObject {
		return "missing"
	}
	return "new"
}

// Title returns short human readable title
func (kind AlertKind) Title() string {
	if kind == AlertMissingObject {
		return "Object Missing"
	}
	return "New Object Detected"
}

// Alert is a notification about new or missing objects
type Alert struct {
	Kind      AlertKind
	Message   string
	Labels    []string
	RaisedAt  time.Time
	ExpiresAt time.Time
}

// alertBoard keeps at most one active alert of every kind.
// Alert is refreshed on every frame where its condition holds and expires after hold duration otherwise.
type alertBoard struct {
	hold   time.Duration
	active map[AlertKind]Alert
}

func newAlertBoard(hold time.Duration) *alertBoard {
	return &alertBoard{
		hold:   hold,
		active: make(map[AlertKind]Alert),
	}
}

// update evaluates objects at now. Returns active alerts and those raised on this call (or changed their message).
func (board *alertBoard) update(objects []mot.TrackedObject, now time.Time) (active []Alert, raised []Alert) {
	newLabels := mot.Labels(objects, func(obj mot.TrackedObject) bool { return obj.IsNew })
	missingLabels := mot.Labels(objects, func(obj mot.TrackedObject) bool { return obj.IsMissing })
	if len(newLabels) > 0 {
		if alert, changed := board.raise(AlertNewObject, "New object detected: ", newLabels, now); changed {
			raised = append(raised, alert)
		}
	}
	if len(missingLabels) > 0 {
		if alert, changed := board.raise(AlertMissingObject, "Object missing: ", missingLabels, now); changed {
			raised = append(raised, alert)
		}
	}

	active = make([]Alert, 0, len(board.active))
	for _, kind := range []AlertKind{AlertNewObject, AlertMissingObject} {
		alert, ok := board.active[kind]
		if !ok {
			continue
		}
		if !now.Before(alert.ExpiresAt) {
			delete(board.active, kind)
			continue
		}
		active = append(active, alert)
	}
	return active, raised
}

func (board *alertBoard) raise(kind AlertKind, prefix string, labels []string, now time.Time) (Alert, bool) {
	message := prefix + strings.Join(labels, ", ")
	prev, exists := board.active[kind]
	alert := Alert{
		Kind:      kind,
		Message:   message,
		Labels:    labels,
		RaisedAt:  now,
		ExpiresAt: now.Add(board.hold),
	}
	if exists && prev.Message == message && now.Before(prev.ExpiresAt) {
		alert.RaisedAt = prev.RaisedAt
	}
	board.active[kind] = alert
	changed := !exists || prev.Message != message || !now.Before(prev.ExpiresAt)
	return alert, changed
}
