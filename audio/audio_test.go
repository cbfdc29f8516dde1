// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"testing"
)

type nopDecoder struct{}

func (nopDecoder) Decode(r io.Reader) (Source, error) { return nil, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(".wav", nopDecoder{})
	reg.Register("MP3", nopDecoder{}) // no dot, upper case

	if _, ok := reg.Get(".wav"); !ok {
		t.Error("Get(.wav) = false, want true")
	}
	if _, ok := reg.Get(".WAV"); !ok {
		t.Error("Get(.WAV) should be case-insensitive")
	}
	if _, ok := reg.Get(".mp3"); !ok {
		t.Error("Get(.mp3) should match dotless registration")
	}
	if _, ok := reg.Get(".ogg"); ok {
		t.Error("Get(.ogg) = true, want false")
	}
}

func TestRegistry_Extensions(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(".wav", nopDecoder{})
	reg.Register(".mp3", nopDecoder{})

	exts := reg.Extensions()
	slices.Sort(exts)
	want := []string{".mp3", ".wav"}
	if !slices.Equal(exts, want) {
		t.Errorf("Extensions() = %v, want %v", exts, want)
	}
}
