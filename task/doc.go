// SPDX-License-Identifier: EPL-2.0

// Package task runs scanning and normalization work on a single
// background execution slot.
//
// The Orchestrator accepts one task at a time; a Submit while a task is
// running fails fast with ErrBusy, it never queues. Tasks report progress
// and exactly one terminal event (finished, error or cancelled) through a
// Sink, delivered in order from one dispatcher goroutine so controllers
// never deal with concurrent callbacks.
//
// Cancellation is cooperative: Cancel sets the task's Token, the task
// polls it at checkpoints, cleans up any partial output and ends with a
// cancelled event. ScanTask enumerates audio files into TrackRecords;
// NormalizeTask drives the engine and builds an Outcome,
// optionally disposing of the original file or writing a temporary
// preview instead.
package task
