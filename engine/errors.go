// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrSourceNotFound means the source file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrUnsupportedFormat means no decoder is registered for the source
	// file's extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrPermissionDenied means the source file exists but cannot be read.
	ErrPermissionDenied = errors.New("permission denied reading source")

	// ErrEmptyOrCorrupt means the source decoded to zero samples or the
	// decoder rejected the stream.
	ErrEmptyOrCorrupt = errors.New("empty or corrupt audio data")

	// ErrMeterInit means the loudness meter could not be parameterized for
	// the source's sample rate.
	ErrMeterInit = errors.New("loudness meter initialization failed")

	// ErrTooLarge means the source exceeds the engine's input size limit.
	ErrTooLarge = errors.New("source file too large")

	// ErrWriteFailure means the normalized output could not be written.
	// Any partially written destination file has been removed.
	ErrWriteFailure = errors.New("failed to write output")

	// ErrDeletionFailure means the original file could not be deleted or
	// moved after normalization.
	ErrDeletionFailure = errors.New("failed to dispose of original file")

	// ErrCancelled means cancellation was observed at a checkpoint. Any
	// partially written output has been removed.
	ErrCancelled = errors.New("operation cancelled")
)
