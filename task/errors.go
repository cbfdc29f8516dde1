// SPDX-License-Identifier: EPL-2.0

package task

import "errors"

var (
	// ErrBusy is returned synchronously by Submit when a task already
	// holds the execution slot. Tasks are never queued.
	ErrBusy = errors.New("a task is already running")

	// ErrNoActiveTask is returned by Cancel when the slot is idle.
	ErrNoActiveTask = errors.New("no active task")

	// ErrClosed is returned by Submit after the orchestrator has been
	// closed.
	ErrClosed = errors.New("orchestrator closed")
)
