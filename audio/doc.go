// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level audio primitives the normalization
// engine is built on.
//
// This package contains:
//   - Source interface for decoded audio input
//   - Decoder interface and extension-keyed Registry
//   - Buffer, an in-memory whole-file sample buffer
//
// # Source Interface
//
// The Source interface is the foundation of audio input:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// All format decoders implement this interface, so any supported file can
// be drained into a Buffer the same way.
//
// # Buffers
//
// Unlike a streaming pipeline, loudness normalization needs the complete
// signal twice: once to measure integrated loudness and once to apply gain.
// Buffer therefore holds the entire decoded stream:
//
//	buf, err := audio.ReadFile("track.mp3", registry)
//	mono, _ := buf.Channel(0)
//	buf.ApplyGain(0.5)
//	peak := buf.Peak()
//
// Gain application accumulates in float64 and narrows back to float32, so
// two successive scalings (gain then peak limiting) do not compound
// single-precision rounding error.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register(".wav", wav.Decoder{})
//	dec, ok := registry.Get(".wav")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Values outside this range can appear transiently after gain; Clamp
// hard-limits them before writing.
package audio
