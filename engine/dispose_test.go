// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDisposeOriginal_Delete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeTempFile(t, dir, "track.mp3", "payload")

	target, err := New().DisposeOriginal(src, "")
	if err != nil {
		t.Fatalf("DisposeOriginal() error = %v", err)
	}
	if target != "" {
		t.Fatalf("target = %q, want empty in delete mode", target)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still exists after delete")
	}
}

func TestDisposeOriginal_DeleteMissing(t *testing.T) {
	t.Parallel()

	_, err := New().DisposeOriginal(filepath.Join(t.TempDir(), "gone.mp3"), "")
	if !errors.Is(err, ErrDeletionFailure) {
		t.Fatalf("error = %v, want ErrDeletionFailure", err)
	}
}

func TestDisposeOriginal_Move(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeTempFile(t, srcDir, "track.mp3", "payload")

	target, err := New().DisposeOriginal(src, dstDir)
	if err != nil {
		t.Fatalf("DisposeOriginal() error = %v", err)
	}
	want := filepath.Join(dstDir, "track.mp3")
	if target != want {
		t.Fatalf("target = %q, want %q", target, want)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still exists after move")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading moved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("moved content = %q, want %q", data, "payload")
	}
}

func TestDisposeOriginal_RefusesExistingTarget(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeTempFile(t, srcDir, "track.mp3", "new")
	writeTempFile(t, dstDir, "track.mp3", "old")

	_, err := New().DisposeOriginal(src, dstDir)
	if !errors.Is(err, ErrDeletionFailure) {
		t.Fatalf("error = %v, want ErrDeletionFailure", err)
	}
	if _, statErr := os.Stat(src); statErr != nil {
		t.Fatal("source should be untouched when the target exists")
	}
	data, _ := os.ReadFile(filepath.Join(dstDir, "track.mp3"))
	if string(data) != "old" {
		t.Fatalf("existing target overwritten: %q", data)
	}
}

func TestDisposeOriginal_MoveMissingSource(t *testing.T) {
	t.Parallel()

	_, err := New().DisposeOriginal(filepath.Join(t.TempDir(), "gone.mp3"), t.TempDir())
	if !errors.Is(err, ErrDeletionFailure) {
		t.Fatalf("error = %v, want ErrDeletionFailure", err)
	}
}
