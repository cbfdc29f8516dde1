// SPDX-License-Identifier: EPL-2.0

// Package engine normalizes single audio files to a target integrated
// loudness.
//
// NormalizeAndSave measures a file with a loudness.Meter, applies the gain
// needed to hit the target, rescales when the gained peak would clip, and
// writes the result as 32-bit float WAV. Sources measuring below -70 LUFS
// are treated as silent and copied without gain, so noise floors never get
// amplified into audible artifacts.
//
// DisposeOriginal handles the original file after a successful write,
// either deleting it or moving it aside with a cross-filesystem fallback.
//
// Cancellation is cooperative through the Canceller interface, polled at
// three checkpoints. A cancelled or failed call never leaves a partial
// destination file behind.
package engine
