// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV (RIFF/WAVE) decoding and encoding.
//
// The decoder walks the chunk list rather than assuming a canonical 44-byte
// header, and supports PCM 8/16/24/32-bit as well as IEEE float 32/64-bit
// sample encodings - the encodings the engine's own output uses.
//
// # Decoding
//
//	decoder := wav.Decoder{}
//	src, err := decoder.Decode(file)
//
// # Encoding
//
// WriteFloat32 writes interleaved float32 samples as a 32-bit IEEE float
// WAV, the container normalized output is persisted in:
//
//	err := wav.WriteFloat32(file, 44100, 2, samples)
package wav
