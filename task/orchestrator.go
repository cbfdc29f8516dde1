// SPDX-License-Identifier: EPL-2.0

package task

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bcdj/loudnorm/engine"
)

// State is the orchestrator's execution slot state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Task is a unit of work the orchestrator runs on its background
// goroutine. Run blocks until done, polling token at its checkpoints and
// reporting status lines through progress.
//
// Run's error decides the terminal event: nil yields finished with the
// payload, an error wrapping engine.ErrCancelled yields cancelled, any
// other error yields an error event. A panic inside Run is recovered at
// the task boundary and surfaced as an error event with a generic message.
type Task interface {
	Name() string
	Run(token *Token, progress func(string)) (Payload, error)
}

// Orchestrator owns a single background execution slot. At most one task
// runs at a time; a second Submit fails fast with ErrBusy instead of
// queuing. All events, for all tasks, are delivered to the sink from one
// dedicated dispatcher goroutine in emission order, and the slot is not
// released until a task's terminal event has been handed to the sink, so
// a caller that observes the terminal event may immediately submit again.
type Orchestrator struct {
	log  *zap.Logger
	sink Sink

	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	state  State
	taskID string
	token  *Token
	closed bool
	wg     sync.WaitGroup
}

// NewOrchestrator creates an orchestrator delivering events to sink.
// A nil logger defaults to a nop logger. Close must be called to stop the
// dispatcher goroutine.
func NewOrchestrator(sink Sink, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{
		log:    log,
		sink:   sink,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		state:  StateIdle,
	}
	go o.dispatch()
	return o
}

// State returns the current slot state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ActiveTask returns the ID of the running task, or "" when idle.
func (o *Orchestrator) ActiveTask() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.taskID
}

// Submit starts t on the background goroutine and returns its ID. It
// fails with ErrBusy while another task holds the slot and with ErrClosed
// after Close.
func (o *Orchestrator) Submit(t Task) (string, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return "", ErrClosed
	}
	if o.state != StateIdle {
		o.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrBusy, o.taskID)
	}

	id := uuid.NewString()
	token := &Token{}
	o.state = StateRunning
	o.taskID = id
	o.token = token
	o.wg.Add(1)
	o.mu.Unlock()

	o.log.Info("task submitted", zap.String("id", id), zap.String("task", t.Name()))
	go o.run(id, t, token)
	return id, nil
}

// Cancel requests cooperative cancellation of the running task. The task
// keeps the slot until it observes the token and its cancelled event has
// been delivered.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return ErrNoActiveTask
	}
	o.log.Info("cancellation requested", zap.String("id", o.taskID))
	o.token.Cancel()
	return nil
}

// Close cancels any running task, waits for its terminal event to be
// delivered, and stops the dispatcher. Submit fails with ErrClosed
// afterwards. Close is not safe to call twice.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	if o.token != nil {
		o.token.Cancel()
	}
	o.mu.Unlock()

	o.wg.Wait()
	close(o.events)
	<-o.done
}

// run executes one task and emits its terminal event. Panics are caught
// here, at the task boundary, logged in full and reported with a generic
// message only.
func (o *Orchestrator) run(id string, t Task, token *Token) {
	defer o.wg.Done()

	var payload Payload
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				o.log.Error("task panic",
					zap.String("id", id),
					zap.String("task", t.Name()),
					zap.Any("panic", r),
					zap.Stack("stack"))
				err = fmt.Errorf("internal error running %s", t.Name())
			}
		}()
		payload, err = t.Run(token, func(msg string) {
			o.events <- Event{ID: id, Task: t.Name(), Type: EventProgress, Message: msg}
		})
	}()

	ev := Event{ID: id, Task: t.Name()}
	switch {
	case err == nil:
		ev.Type = EventFinished
		ev.Message = payload.Message
		ev.Records = payload.Records
		ev.ScanStatus = payload.ScanStatus
		ev.Outcome = payload.Outcome
	case errors.Is(err, engine.ErrCancelled):
		ev.Type = EventCancelled
		ev.Message = err.Error()
	default:
		ev.Type = EventError
		ev.Message = err.Error()
	}

	o.log.Info("task finished",
		zap.String("id", id),
		zap.String("task", t.Name()),
		zap.String("result", string(ev.Type)))
	o.events <- ev
}

// dispatch is the single delivery context for the sink. Releasing the
// slot only after the terminal event is handed over gives a strict
// happens-before between one task's last event and the next Submit.
func (o *Orchestrator) dispatch() {
	defer close(o.done)

	for ev := range o.events {
		if o.sink != nil {
			o.sink.HandleEvent(ev)
		}
		if ev.Type.Terminal() {
			o.release()
		}
	}
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.state = StateIdle
	o.taskID = ""
	o.token = nil
	o.mu.Unlock()
}
