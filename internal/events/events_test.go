package events

import (
	"testing"
	"time"
)

// recordingSink captures published events
type recordingSink struct {
	events []*Event
}

func (r *recordingSink) Publish(event *Event) {
	r.events = append(r.events, event)
}

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	event := New(TypeScoreComputed, "eval-1", "Patna", map[string]interface{}{"numeric_score": 0.62})
	after := time.Now().UTC()

	if event.Type != TypeScoreComputed || event.EvaluationID != "eval-1" || event.Address != "Patna" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", event.Timestamp, before, after)
	}
}

func TestMultiSink_FansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	multi := NewMultiSink(a, b)

	event := New(TypeEvaluationStarted, "", "Ranchi", nil)
	multi.Publish(event)

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("fan-out failed: a=%d b=%d", len(a.events), len(b.events))
	}
	if a.events[0] != event || b.events[0] != event {
		t.Error("sinks should receive the same event")
	}
}

func TestMultiSink_Empty(t *testing.T) {
	// Publishing with no sinks must not panic
	NewMultiSink().Publish(New(TypeEvaluationFailed, "", "", nil))
}
