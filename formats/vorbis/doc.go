// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding support.
//
// This package uses github.com/jfreymuth/oggvorbis, which decodes directly
// to interleaved float32 samples, so no PCM conversion step is needed.
package vorbis
