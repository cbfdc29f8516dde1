// SPDX-License-Identifier: EPL-2.0

// Package wavtest writes WAV fixture files for tests. It lives apart
// from audiotest so that packages below formats/wav can still use the
// mock sources without an import cycle.
package wavtest

import (
	"math"
	"os"
	"testing"

	"github.com/bcdj/loudnorm/formats/wav"
)

// WriteWAVFile writes interleaved float32 samples to path as a 32-bit
// float WAV file, failing the test on error.
func WriteWAVFile(t testing.TB, path string, rate, channels int, samples []float32) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture %s: %v", path, err)
	}
	defer f.Close()

	if err := wav.WriteFloat32(f, rate, channels, samples); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// WriteSineWAV writes a mono sine-wave WAV fixture to path.
func WriteSineWAV(t testing.TB, path string, rate int, seconds, frequency, amplitude float64) {
	t.Helper()

	n := int(seconds * float64(rate))
	samples := make([]float32, n)
	for i := range samples {
		ts := float64(i) / float64(rate)
		samples[i] = float32(amplitude * math.Sin(2*math.Pi*frequency*ts))
	}
	WriteWAVFile(t, path, rate, 1, samples)
}

// WriteSilenceWAV writes a mono all-zero WAV fixture to path.
func WriteSilenceWAV(t testing.TB, path string, rate int, seconds float64) {
	t.Helper()

	WriteWAVFile(t, path, rate, 1, make([]float32, int(seconds*float64(rate))))
}
