package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// fakeAiff serves canned int PCM like go-audio's aiff.Decoder.
type fakeAiff struct {
	data   []int
	pos    int
	format *goaudio.Format
}

func (f *fakeAiff) Format() *goaudio.Format { return f.format }

func (f *fakeAiff) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.pos >= len(f.data) {
		return 0, nil
	}
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestReadSamples_Normalizes16Bit(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &fakeAiff{
			data:   []int{0, 16384, -32768, 32767},
			format: &goaudio.Format{NumChannels: 1, SampleRate: 44100},
		},
		sampleRate: 44100,
		channels:   1,
		bitDepth:   16,
	}

	dst := make([]float32, 4)
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

func TestReadSamples_Normalizes24Bit(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &fakeAiff{
			data:   []int{4194304, -8388608},
			format: &goaudio.Format{NumChannels: 1, SampleRate: 48000},
		},
		sampleRate: 48000,
		channels:   1,
		bitDepth:   24,
	}

	dst := make([]float32, 2)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ReadSamples() n = %d, want 2", n)
	}
	if math.Abs(float64(dst[0]-0.5)) > 1e-6 {
		t.Errorf("dst[0] = %v, want 0.5", dst[0])
	}
	if math.Abs(float64(dst[1]+1.0)) > 1e-6 {
		t.Errorf("dst[1] = %v, want -1.0", dst[1])
	}
}

func TestReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec: &fakeAiff{
			format: &goaudio.Format{NumChannels: 1, SampleRate: 44100},
		},
		sampleRate: 44100,
		channels:   1,
		bitDepth:   16,
	}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestDecode_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF....WAVE this is a wav, not an aiff")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Fatalf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}
