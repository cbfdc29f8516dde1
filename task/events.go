// SPDX-License-Identifier: EPL-2.0

package task

// EventType classifies events emitted during task execution.
type EventType string

const (
	// EventProgress carries a human-readable status line. Any number may
	// precede the terminal event.
	EventProgress EventType = "progress"
	// EventFinished is the terminal event of a task that ran to
	// completion and produced a payload.
	EventFinished EventType = "finished"
	// EventError is the terminal event of a task that failed
	// unexpectedly. The message is safe to display; full detail goes to
	// the log only.
	EventError EventType = "error"
	// EventCancelled is the terminal event of a task that observed its
	// cancellation token at a checkpoint.
	EventCancelled EventType = "cancelled"
)

// Terminal reports whether the type ends a task's event stream.
func (t EventType) Terminal() bool {
	return t != EventProgress
}

// Event is one message in a task's event stream. Exactly one terminal
// event is delivered per task, always last; progress events arrive in
// emission order before it.
type Event struct {
	// ID is the task's identifier as returned by Submit.
	ID string
	// Task is the task's name, for display and logging.
	Task string
	// Type tags which variant this event is.
	Type EventType
	// Message is a human-readable status or reason.
	Message string

	// Records is the scan result, set on a scan task's finished event.
	Records []TrackRecord
	// ScanStatus summarizes a completed scan.
	ScanStatus string
	// Outcome is the normalization result, set on a normalize task's
	// finished event.
	Outcome *Outcome
}

// Payload is what a task hands back to the orchestrator for its finished
// event.
type Payload struct {
	Message    string
	Records    []TrackRecord
	ScanStatus string
	Outcome    *Outcome
}

// Sink receives a task's events. The orchestrator calls HandleEvent from a
// single dedicated goroutine, one event at a time, in order, so
// implementations need no locking of their own for event handling.
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) HandleEvent(ev Event) { f(ev) }
