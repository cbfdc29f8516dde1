// SPDX-License-Identifier: EPL-2.0

package task

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcdj/loudnorm/engine"
	"github.com/bcdj/loudnorm/internal/wavtest"
	"github.com/bcdj/loudnorm/loudness"
)

func testMeter(t *testing.T) *loudness.Meter {
	t.Helper()
	m, err := loudness.NewMeter(48000)
	if err != nil {
		t.Fatalf("NewMeter() error = %v", err)
	}
	return m
}

func TestNormalizeTask_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	dst := filepath.Join(dir, "out.wav")
	wavtest.WriteSineWAV(t, src, 48000, 1.0, 997, 0.1)

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: src,
		DestPath:   dst,
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := payload.Outcome
	if out == nil || !out.Succeeded {
		t.Fatalf("Outcome = %+v, want success", out)
	}
	if !out.Measured || math.IsInf(out.MeasuredLUFS, 0) {
		t.Fatalf("MeasuredLUFS = %v (measured=%v), want finite", out.MeasuredLUFS, out.Measured)
	}
	if out.OutputPath != dst {
		t.Fatalf("OutputPath = %q, want %q", out.OutputPath, dst)
	}
	if out.DeletionAttempted {
		t.Fatal("DeletionAttempted = true without Dispose")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("source removed without Dispose")
	}
}

func TestNormalizeTask_DisposeDeletesOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	dst := filepath.Join(dir, "out.wav")
	wavtest.WriteSineWAV(t, src, 48000, 1.0, 997, 0.1)

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: src,
		DestPath:   dst,
		Dispose:    true,
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := payload.Outcome
	if !out.DeletionAttempted || !out.DeletionSucceeded {
		t.Fatalf("deletion flags = %+v, want attempted and succeeded", out)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still exists after dispose")
	}
}

func TestNormalizeTask_DeletionFailureIsWarningNotFailure(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	moveDir := t.TempDir()
	src := filepath.Join(srcDir, "in.wav")
	dst := filepath.Join(srcDir, "out.wav")
	wavtest.WriteSineWAV(t, src, 48000, 1.0, 997, 0.1)
	// Occupy the move target so disposition must fail.
	if err := os.WriteFile(filepath.Join(moveDir, "in.wav"), []byte("occupied"), 0o644); err != nil {
		t.Fatal(err)
	}

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: src,
		DestPath:   dst,
		Dispose:    true,
		MoveFolder: moveDir,
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := payload.Outcome
	if !out.Succeeded {
		t.Fatal("Succeeded = false, deletion failure must not undo a successful write")
	}
	if !out.DeletionAttempted || out.DeletionSucceeded {
		t.Fatalf("deletion flags = %+v, want attempted and failed", out)
	}
	if out.DeletionMessage == "" {
		t.Fatal("DeletionMessage empty on deletion failure")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatal("normalized output missing after deletion failure")
	}
}

func TestNormalizeTask_EngineFailureBecomesOutcome(t *testing.T) {
	t.Parallel()

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: filepath.Join(t.TempDir(), "missing.wav"),
		DestPath:   filepath.Join(t.TempDir(), "out.wav"),
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v, engine failures should become outcomes", err)
	}
	out := payload.Outcome
	if out == nil || out.Succeeded {
		t.Fatalf("Outcome = %+v, want failure outcome", out)
	}
	if out.Message == "" {
		t.Fatal("failure outcome has no message")
	}
}

func TestNormalizeTask_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	dst := filepath.Join(dir, "out.wav")
	wavtest.WriteSineWAV(t, src, 48000, 1.0, 997, 0.1)

	token := &Token{}
	token.Cancel()
	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: src,
		DestPath:   dst,
	}
	if _, err := task.Run(token, noProgress); !errors.Is(err, engine.ErrCancelled) {
		t.Fatalf("Run() error = %v, want ErrCancelled", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("destination exists after cancelled run")
	}
}

func TestNormalizeTask_Preview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	wavtest.WriteSineWAV(t, src, 48000, 1.0, 997, 0.1)

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: src,
		Preview:    true,
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := payload.Outcome
	if !out.Succeeded {
		t.Fatalf("Outcome = %+v, want success", out)
	}
	if out.OutputPath == "" || !strings.HasSuffix(out.OutputPath, ".wav") {
		t.Fatalf("preview OutputPath = %q, want temp .wav path", out.OutputPath)
	}
	defer os.Remove(out.OutputPath)

	if _, err := os.Stat(out.OutputPath); err != nil {
		t.Fatalf("preview file missing: %v", err)
	}
}

func TestNormalizeTask_PreviewFailureHasNoOutputPath(t *testing.T) {
	t.Parallel()

	task := &NormalizeTask{
		Engine:     engine.New(),
		Meter:      testMeter(t),
		TargetLUFS: -14.0,
		SourcePath: filepath.Join(t.TempDir(), "missing.wav"),
		Preview:    true,
	}
	payload, err := task.Run(&Token{}, noProgress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := payload.Outcome
	if out == nil || out.Succeeded {
		t.Fatalf("Outcome = %+v, want failure outcome", out)
	}
	if out.OutputPath != "" {
		t.Fatalf("OutputPath = %q after preview failure, want empty", out.OutputPath)
	}
}
