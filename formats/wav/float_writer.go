// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteFloat32 writes an interleaved 32-bit IEEE float WAV stream at
// sampleRate with the given channel count. Float output preserves the
// normalized dynamic range without requantization, which is why the engine
// re-encodes everything it writes as float WAV.
func WriteFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if channels <= 0 {
		channels = 1
	}

	bitsPerSample := uint16(32)
	byteRate := uint32(sampleRate) * uint32(channels) * uint32(bitsPerSample/8)
	blockAlign := uint16(channels) * (bitsPerSample / 8)
	dataSize := uint32(len(samples) * 4)
	frames := uint32(len(samples) / channels)
	// riff body: "WAVE" + fmt(8+18) + fact(8+4) + data header(8) + data
	riffSize := 4 + 26 + 12 + 8 + dataSize

	// Pre-allocate buffer for the entire header (58 bytes)
	header := make([]byte, 58)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (26 bytes, 18-byte body with cbSize=0 as non-PCM requires)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 18)
	binary.LittleEndian.PutUint16(header[20:22], formatFloat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	binary.LittleEndian.PutUint16(header[36:38], 0) // cbSize

	// fact chunk (12 bytes) - required for non-PCM formats
	copy(header[38:42], "fact")
	binary.LittleEndian.PutUint32(header[42:46], 4)
	binary.LittleEndian.PutUint32(header[46:50], frames)

	// data chunk header (8 bytes)
	copy(header[50:54], "data")
	binary.LittleEndian.PutUint32(header[54:58], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	// Write sample data in chunks to bound the conversion buffer.
	const chunkSize = 8192
	bufSize := min(len(samples), chunkSize)
	buf := make([]byte, bufSize*4)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		chunk := samples[i:end]
		buf = buf[:len(chunk)*4]

		for j, s := range chunk {
			binary.LittleEndian.PutUint32(buf[j*4:j*4+4], math.Float32bits(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}
