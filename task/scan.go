// SPDX-License-Identifier: EPL-2.0

package task

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bcdj/loudnorm/engine"
)

// TrackRecord describes one audio file discovered by a scan. MeasuredLUFS
// is filled in lazily by later normalization runs, not by the scan.
type TrackRecord struct {
	FullPath     string
	Filename     string
	DisplayName  string
	DurationMS   int64
	MeasuredLUFS float64
	Measured     bool
}

// ScanTask enumerates a directory for supported audio files. The result
// is all-or-nothing: a scan cancelled at any checkpoint reports no
// records at all, never a partial list.
type ScanTask struct {
	// Dir is the directory to scan.
	Dir string
	// Recursive walks subdirectories as well.
	Recursive bool
	// Extensions overrides the accepted extensions (dot-prefixed,
	// case-insensitive). Empty means the built-in decoder formats.
	Extensions []string
}

func (t *ScanTask) Name() string { return "scan" }

// Run walks Dir, builds one TrackRecord per supported audio file, probes
// each file's duration (non-fatal, 0 on failure) and returns the records
// sorted case-insensitively by filename.
func (t *ScanTask) Run(token *Token, progress func(string)) (Payload, error) {
	if token.Cancelled() {
		return Payload{}, fmt.Errorf("%w: scan of %s", engine.ErrCancelled, t.Dir)
	}

	accept := t.acceptSet()
	progress(fmt.Sprintf("scanning %s", t.Dir))

	var records []TrackRecord
	walk := func(path string, d fs.DirEntry) error {
		if token.Cancelled() {
			return engine.ErrCancelled
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		// macOS resource-fork companions
		if strings.HasPrefix(name, "._") {
			return nil
		}
		if _, ok := accept[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}

		records = append(records, TrackRecord{
			FullPath:    path,
			Filename:    name,
			DisplayName: strings.TrimSuffix(name, filepath.Ext(name)),
			DurationMS:  ProbeDuration(path),
		})
		return nil
	}

	var err error
	if t.Recursive {
		err = filepath.WalkDir(t.Dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			return walk(path, d)
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(t.Dir)
		if err == nil {
			for _, entry := range entries {
				if err = walk(filepath.Join(t.Dir, entry.Name()), entry); err != nil {
					break
				}
			}
		}
	}
	if err != nil {
		if token.Cancelled() {
			return Payload{}, fmt.Errorf("%w: scan of %s", engine.ErrCancelled, t.Dir)
		}
		return Payload{}, fmt.Errorf("scanning %s: %w", t.Dir, err)
	}

	if token.Cancelled() {
		return Payload{}, fmt.Errorf("%w: scan of %s", engine.ErrCancelled, t.Dir)
	}

	sort.Slice(records, func(i, j int) bool {
		return strings.ToLower(records[i].Filename) < strings.ToLower(records[j].Filename)
	})

	status := fmt.Sprintf("found %d tracks in %s", len(records), t.Dir)
	return Payload{
		Message:    status,
		Records:    records,
		ScanStatus: status,
	}, nil
}

// acceptSet builds the lowercase extension filter.
func (t *ScanTask) acceptSet() map[string]struct{} {
	exts := t.Extensions
	if len(exts) == 0 {
		exts = engine.DefaultRegistry().Extensions()
	}
	accept := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		accept[ext] = struct{}{}
	}
	return accept
}
