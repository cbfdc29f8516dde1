// SPDX-License-Identifier: EPL-2.0

package task

import "sync/atomic"

// Token is a cooperative cancellation flag shared between the orchestrator
// and a running task. The orchestrator sets it on a cancel request; the
// task polls it at its checkpoints and winds down on its own. Nothing ever
// force-kills a running task.
//
// A Token is created per task and discarded when the task ends. It
// satisfies engine.Canceller.
type Token struct {
	flag atomic.Bool
}

// Cancel requests cancellation. Safe to call from any goroutine, and more
// than once.
func (t *Token) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *Token) Cancelled() bool {
	return t.flag.Load()
}
