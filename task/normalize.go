// SPDX-License-Identifier: EPL-2.0

package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bcdj/loudnorm/engine"
	"github.com/bcdj/loudnorm/loudness"
)

// Outcome is the immutable result of one normalization task, handed to
// the controller on the finished event.
type Outcome struct {
	// Succeeded reports whether the normalized output was written. A
	// failed disposition of the original afterwards does not clear it;
	// that case is success with a warning in DeletionMessage.
	Succeeded bool
	// Message is a human-readable summary.
	Message string
	// MeasuredLUFS is the source's integrated loudness, valid when
	// Measured is true.
	MeasuredLUFS float64
	Measured     bool
	// PeakLimited reports that the gained signal had to be scaled back
	// under the clipping ceiling.
	PeakLimited bool
	// OutputPath is where the normalized audio was written.
	OutputPath string
	// OriginalSourcePath is the task's input file.
	OriginalSourcePath string

	// DeletionAttempted, DeletionSucceeded and DeletionMessage report
	// the optional disposition of the original file after a successful
	// write.
	DeletionAttempted bool
	DeletionSucceeded bool
	DeletionMessage   string
}

// NormalizeTask normalizes one file through the engine, optionally
// disposing of the original afterwards. Preview mode writes to a
// temporary WAV instead of DestPath; on success the temp path is handed
// to the controller (which owns deleting it after audition), on failure
// or cancellation it is removed before the terminal event.
type NormalizeTask struct {
	Engine     *engine.Engine
	Meter      *loudness.Meter
	TargetLUFS float64
	SourcePath string
	// DestPath is the output location. Ignored in preview mode.
	DestPath string
	// Preview writes to a temporary file for audition.
	Preview bool
	// Dispose removes the original after a successful (non-preview)
	// normalization. With MoveFolder set the original is moved there
	// instead of deleted.
	Dispose    bool
	MoveFolder string
}

func (t *NormalizeTask) Name() string { return "normalize" }

// PreviewDestination creates the temporary WAV file a preview run writes
// to and returns its path.
func PreviewDestination() (string, error) {
	f, err := os.CreateTemp("", "loudnorm-preview-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating preview file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("creating preview file: %w", err)
	}
	return path, nil
}

func (t *NormalizeTask) Run(token *Token, progress func(string)) (Payload, error) {
	base := filepath.Base(t.SourcePath)
	progress(fmt.Sprintf("normalizing %s", base))

	dest := t.DestPath
	if t.Preview {
		var err error
		if dest, err = PreviewDestination(); err != nil {
			return Payload{}, err
		}
	}

	res, err := t.Engine.NormalizeAndSave(t.Meter, t.TargetLUFS, t.SourcePath, dest, token)
	if err != nil {
		if t.Preview {
			os.Remove(dest)
		}
		if errors.Is(err, engine.ErrCancelled) {
			return Payload{}, err
		}
		// Engine failures are expected outcomes, not task faults.
		out := &Outcome{
			Message:            err.Error(),
			OriginalSourcePath: t.SourcePath,
		}
		return Payload{Message: out.Message, Outcome: out}, nil
	}

	out := &Outcome{
		Succeeded:          true,
		Message:            res.Message,
		MeasuredLUFS:       res.MeasuredLUFS,
		Measured:           res.Measured,
		PeakLimited:        res.PeakLimited,
		OutputPath:         res.OutputPath,
		OriginalSourcePath: t.SourcePath,
	}

	if t.Dispose && !t.Preview {
		progress(fmt.Sprintf("removing original %s", base))
		out.DeletionAttempted = true
		if _, derr := t.Engine.DisposeOriginal(t.SourcePath, t.MoveFolder); derr != nil {
			out.DeletionSucceeded = false
			out.DeletionMessage = derr.Error()
		} else {
			out.DeletionSucceeded = true
		}
	}

	return Payload{Message: out.Message, Outcome: out}, nil
}
