// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DisposeOriginal removes or relocates a source file after its normalized
// copy has been written. It must only be called once normalization has
// succeeded; the engine never disposes of a source on its own.
//
// With destFolder empty the source is deleted outright and the returned
// path is empty. Otherwise the source is moved into destFolder under its
// own filename: first by rename, then by copy-and-delete when the rename
// fails across filesystems. A failed delete after a successful copy rolls
// the copy back so no duplicate is left behind. Moving onto an existing
// file is refused.
//
// All failures come back as ErrDeletionFailure with a human-readable
// reason; underlying OS detail goes to the logger only.
func (e *Engine) DisposeOriginal(sourcePath, destFolder string) (string, error) {
	log := e.log.With(zap.String("source", sourcePath))

	if destFolder == "" {
		if err := os.Remove(sourcePath); err != nil {
			log.Warn("delete failed", zap.Error(err))
			return "", fmt.Errorf("%w: could not delete %s", ErrDeletionFailure, filepath.Base(sourcePath))
		}
		log.Info("original deleted")
		return "", nil
	}

	target := filepath.Join(destFolder, filepath.Base(sourcePath))
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s already exists", ErrDeletionFailure, target)
	}

	if err := os.Rename(sourcePath, target); err == nil {
		log.Info("original moved", zap.String("target", target))
		return target, nil
	}

	// Rename fails across devices; fall back to copy then delete.
	if err := copyFile(sourcePath, target); err != nil {
		log.Warn("copy fallback failed", zap.Error(err))
		return "", fmt.Errorf("%w: could not move %s", ErrDeletionFailure, filepath.Base(sourcePath))
	}
	if err := os.Remove(sourcePath); err != nil {
		os.Remove(target)
		log.Warn("delete after copy failed, copy rolled back", zap.Error(err))
		return "", fmt.Errorf("%w: moved copy rolled back, could not delete %s",
			ErrDeletionFailure, filepath.Base(sourcePath))
	}
	log.Info("original moved across filesystems", zap.String("target", target))
	return target, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
