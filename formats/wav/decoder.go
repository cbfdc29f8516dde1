package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bcdj/loudnorm/audio"
)

const (
	formatPCM   = 1
	formatFloat = 3
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	format     uint16
	bitDepth   int
	remaining  int64 // bytes left in the data chunk
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.remaining <= 0 {
		return 0, io.EOF
	}

	bytesPerSample := s.bitDepth / 8
	want := int64(len(dst) * bytesPerSample)
	if want > s.remaining {
		want = s.remaining
	}
	// Never split a sample across reads.
	want -= want % int64(bytesPerSample)
	if want == 0 {
		return 0, io.EOF
	}

	if int64(cap(s.buf)) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	n, err := io.ReadFull(s.r, s.buf)
	s.remaining -= int64(n)
	n -= n % bytesPerSample
	if n == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("reading wav data: %w", err)
		}
		return 0, io.EOF
	}

	samples := n / bytesPerSample
	for i := 0; i < samples; i++ {
		dst[i] = s.decodeSample(s.buf[i*bytesPerSample:])
	}

	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return samples, fmt.Errorf("reading wav data: %w", err)
	}
	return samples, nil
}

// decodeSample converts one little-endian sample starting at b[0] to a
// float32 in [-1, 1].
func (s *wavSource) decodeSample(b []byte) float32 {
	if s.format == formatFloat {
		if s.bitDepth == 64 {
			return float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}

	switch s.bitDepth {
	case 8:
		// 8-bit WAV is unsigned
		return (float32(b[0]) - 128.0) / 128.0
	case 16:
		return float32(int16(binary.LittleEndian.Uint16(b))) / 32768.0
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xffffff) // sign-extend
		}
		return float32(v) / 8388608.0
	default: // 32
		return float32(int32(binary.LittleEndian.Uint32(b))) / 2147483648.0
	}
}

type Decoder struct{}

// Decode parses the RIFF/WAVE container and returns a Source positioned at
// the start of the data chunk. Unlike a fixed 44-byte header parse, chunks
// before data (fact, LIST, cue, ...) are walked and skipped, which is what
// real-world encoders emit.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("reading riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrNotWavFile
	}

	src := &wavSource{r: r}
	haveFmt := false

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrMissingDataChunk
			}
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, ErrUnsupportedWavLayout
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("reading fmt chunk: %w", err)
			}
			src.format = binary.LittleEndian.Uint16(body[0:2])
			src.channels = int(binary.LittleEndian.Uint16(body[2:4]))
			src.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			src.bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true

			if err := validateEncoding(src.format, src.bitDepth); err != nil {
				return nil, err
			}
			if src.channels <= 0 || src.sampleRate <= 0 {
				return nil, ErrUnsupportedWavLayout
			}

		case "data":
			if !haveFmt {
				return nil, ErrUnsupportedWavLayout
			}
			src.remaining = size
			return src, nil

		default:
			// Skip unknown chunks; chunk bodies are word-aligned.
			if size%2 != 0 {
				size++
			}
			if _, err := io.CopyN(io.Discard, r, size); err != nil {
				return nil, fmt.Errorf("skipping %q chunk: %w", id, err)
			}
		}
	}
}

func validateEncoding(format uint16, bitDepth int) error {
	switch format {
	case formatPCM:
		switch bitDepth {
		case 8, 16, 24, 32:
			return nil
		}
	case formatFloat:
		switch bitDepth {
		case 32, 64:
			return nil
		}
	}
	return fmt.Errorf("%w: format=%d bits=%d", ErrUnsupportedEncoding, format, bitDepth)
}
