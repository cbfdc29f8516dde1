// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF decoding support.
//
// This package uses github.com/go-audio/aiff to decode AIFF files with
// 8, 16, 24, or 32-bit PCM samples.
package aiff
