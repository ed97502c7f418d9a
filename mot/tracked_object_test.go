package mot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxFloats = cmpopts.EquateApprox(0, eps)

func TestTrackedObjectStatus(t *testing.T) {
	cases := []struct {
		obj      TrackedObject
		expected Status
	}{
		{TrackedObject{}, StatusTracked},
		{TrackedObject{IsNew: true}, StatusNew},
		{TrackedObject{IsMissing: true}, StatusMissing},
		{TrackedObject{IsNew: true, IsMissing: true}, StatusNew},
	}
	for _, c := range cases {
		if status := c.obj.Status(); status != c.expected {
			t.Errorf("Expected status %s for %+v, got %s", c.expected, c.obj, status)
		}
	}
	if StatusMissing.String() != "missing" || StatusNew.String() != "new" || StatusTracked.String() != "tracked" {
		t.Error("Unexpected status names")
	}
}

func TestSummarizeAndLabels(t *testing.T) {
	objects := []TrackedObject{
		{Label: "person", IsNew: true},
		{Label: "cup", IsMissing: true},
		{Label: "dog"},
		{Label: "cat", IsNew: true},
		{Label: "bird", IsNew: true, IsMissing: true},
	}
	summary := Summarize(objects)
	expected := Summary{Total: 5, New: 3, Missing: 2}
	if summary != expected {
		t.Errorf("Expected summary %+v, got %+v", expected, summary)
	}
	isNew := func(obj TrackedObject) bool { return obj.IsNew }
	if diff := cmp.Diff([]string{"person", "cat", "bird"}, Labels(objects, isNew)); diff != "" {
		t.Errorf("Labels(new) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cup", "bird"}, Labels(objects, func(obj TrackedObject) bool { return obj.IsMissing })); diff != "" {
		t.Errorf("Labels(missing) mismatch (-want +got):\n%s", diff)
	}
	tracked := func(obj TrackedObject) bool { return obj.Status() == StatusTracked }
	if diff := cmp.Diff([]string{"dog"}, Labels(objects, tracked)); diff != "" {
		t.Errorf("Labels(tracked) mismatch (-want +got):\n%s", diff)
	}
	if labels := Labels(nil, isNew); labels == nil || len(labels) != 0 {
		t.Errorf("Expected empty labels, got %v", labels)
	}
}

func TestIDGenerators(t *testing.T) {
	gen := NewSequentialGenerator()
	if id := gen.NewID(); id != "obj_1" {
		t.Errorf("Expected obj_1, got %s", id)
	}
	if id := gen.NewID(); id != "obj_2" {
		t.Errorf("Expected obj_2, got %s", id)
	}

	seen := make(map[string]struct{})
	uuidGen := UUIDGenerator{}
	for i := 0; i < 1000; i++ {
		id := uuidGen.NewID()
		if _, ok := seen[id]; ok {
			t.Fatalf("Duplicate identifier %s", id)
		}
		seen[id] = struct{}{}
	}
}
