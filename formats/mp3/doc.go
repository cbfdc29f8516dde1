// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding support.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 streams
// into the audio.Source interface. Output is always 2-channel 16-bit PCM
// regardless of the source channel layout; that is what go-mp3 emits.
package mp3
