// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

// fakeMP3 serves canned 16-bit PCM bytes like gomp3.Decoder does.
type fakeMP3 struct {
	data []byte
	pos  int
	rate int
}

func (f *fakeMP3) SampleRate() int { return f.rate }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func pcm16Bytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestReadSamples_ConvertsPCM(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeMP3{data: pcm16Bytes([]int16{0, 16384, -32768, 32767}), rate: 44100},
		sampleRate: 44100,
		channels:   2,
	}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float32{0, 0.5, -1.0, 32767.0 / 32768.0}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeMP3{rate: 44100},
		sampleRate: 44100,
		channels:   2,
	}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestDecode_InvalidStream(t *testing.T) {
	t.Parallel()

	r := &fakeMP3{data: []byte("definitely not an mp3 bitstream")}
	if _, err := (Decoder{}).Decode(readerOnly{r}); err == nil {
		t.Fatal("Decode() of garbage succeeded, want error")
	}
}

// readerOnly hides extra methods so Decode sees a plain io.Reader.
type readerOnly struct{ r io.Reader }

func (r readerOnly) Read(p []byte) (int, error) { return r.r.Read(p) }
