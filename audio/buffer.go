// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Buffer holds a fully decoded audio stream as interleaved float32 samples
// in [-1, 1]. It is the unit the normalization engine operates on: whole
// files are read into memory, processed, and written back out.
type Buffer struct {
	Data     []float32 // interleaved samples
	Rate     int       // sample rate in Hz
	Channels int
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Channel extracts channel i into a new slice. Interleaved data stays
// untouched.
func (b *Buffer) Channel(i int) ([]float32, error) {
	if i < 0 || i >= b.Channels {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadChannel, i, b.Channels)
	}
	if b.Channels == 1 {
		return b.Data, nil
	}

	frames := b.Frames()
	out := make([]float32, frames)
	for f := 0; f < frames; f++ {
		out[f] = b.Data[f*b.Channels+i]
	}
	return out, nil
}

// Peak returns the maximum absolute sample value, computed in float64.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b.Data {
		v := float64(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// ApplyGain multiplies every sample by factor. The multiplication runs in
// float64 and narrows back to float32, so chaining two gains does not
// compound single-precision rounding error.
func (b *Buffer) ApplyGain(factor float64) {
	for i, s := range b.Data {
		b.Data[i] = float32(float64(s) * factor)
	}
}

// Clamp hard-limits every sample to [-1, 1].
func (b *Buffer) Clamp() {
	for i, s := range b.Data {
		if s > 1 {
			b.Data[i] = 1
		} else if s < -1 {
			b.Data[i] = -1
		}
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]float32, len(b.Data))
	copy(data, b.Data)
	return &Buffer{Data: data, Rate: b.Rate, Channels: b.Channels}
}

// ReadAll drains src into a Buffer. The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	buf := &Buffer{
		Rate:     src.SampleRate(),
		Channels: src.Channels(),
	}
	if buf.Rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, buf.Rate)
	}
	if buf.Channels <= 0 {
		buf.Channels = 1
	}

	tmp := make([]float32, 8192)
	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			buf.Data = append(buf.Data, tmp[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if len(buf.Data) == 0 {
		return nil, ErrEmptyData
	}
	return buf, nil
}

// ReadFile opens path, picks a decoder from the registry by extension, and
// reads the whole stream into a Buffer.
func ReadFile(path string, reg *Registry) (*Buffer, error) {
	ext := filepath.Ext(path)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDecoder, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	return ReadAll(src)
}
