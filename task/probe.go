// SPDX-License-Identifier: EPL-2.0

package task

import (
	"os"
	"path/filepath"
	"strings"

	goaiff "github.com/go-audio/aiff"
	gowav "github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// ProbeDuration returns the playing time of an audio file in
// milliseconds. Metadata is best effort: any failure, or an unknown
// extension, yields 0 rather than an error.
func ProbeDuration(path string) int64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		d, err := gowav.NewDecoder(f).Duration()
		if err != nil {
			return 0
		}
		return d.Milliseconds()

	case ".aiff", ".aif":
		d, err := goaiff.NewDecoder(f).Duration()
		if err != nil {
			return 0
		}
		return d.Milliseconds()

	case ".mp3":
		dec, err := gomp3.NewDecoder(f)
		if err != nil || dec.SampleRate() == 0 {
			return 0
		}
		// Length is decoded PCM bytes: 16-bit samples, always 2 channels.
		frames := dec.Length() / 4
		return frames * 1000 / int64(dec.SampleRate())

	case ".ogg":
		r, err := oggvorbis.NewReader(f)
		if err != nil || r.SampleRate() == 0 {
			return 0
		}
		return r.Length() * 1000 / int64(r.SampleRate())

	default:
		return 0
	}
}
