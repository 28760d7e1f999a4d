package events

import (
	"time"

	"github.com/plotwise/plotwise/pkg/logger"
)

// Event types emitted during an evaluation
const (
	TypeEvaluationStarted   = "evaluation.started"
	TypeSignalsCollected    = "evaluation.signals_collected"
	TypeScoreComputed       = "evaluation.score_computed"
	TypeDecisionReconciled  = "evaluation.decision_reconciled"
	TypeEvaluationCompleted = "evaluation.completed"
	TypeEvaluationFailed    = "evaluation.failed"
)

// Event is one observable step of the evaluation pipeline
type Event struct {
	Type         string                 `json:"type"`
	EvaluationID string                 `json:"evaluation_id,omitempty"`
	Address      string                 `json:"address,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
}

// Sink receives pipeline events. Publishing must never block or fail
// the evaluation itself.
type Sink interface {
	Publish(event *Event)
}

// MultiSink fans one event out to several sinks
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that publishes to all given sinks
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Publish forwards the event to every sink
func (m *MultiSink) Publish(event *Event) {
	for _, s := range m.sinks {
		s.Publish(event)
	}
}

// LogSink writes events to the structured log
type LogSink struct {
	logger *logger.Logger
}

// NewLogSink creates a new log sink
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

// Publish logs the event
func (s *LogSink) Publish(event *Event) {
	s.logger.WithFields(map[string]interface{}{
		"event_type":    event.Type,
		"evaluation_id": event.EvaluationID,
		"address":       event.Address,
	}).Info("Pipeline event")
}

// New builds an event with the timestamp set
func New(eventType, evaluationID, address string, payload map[string]interface{}) *Event {
	return &Event{
		Type:         eventType,
		EvaluationID: evaluationID,
		Address:      address,
		Payload:      payload,
		Timestamp:    time.Now().UTC(),
	}
}
