// SPDX-License-Identifier: EPL-2.0

// Package loudness implements integrated loudness measurement (LUFS) per
// ITU-R BS.1770-4.
//
// The meter applies a two-stage K-weighting pre-filter (high shelf plus
// high pass), integrates mean-square energy over 400 ms blocks with 75%
// overlap, and gates blocks first at an absolute -70 LUFS threshold and
// then at a relative threshold 10 LU below the mean of the surviving
// blocks.
//
//	meter, err := loudness.NewMeter(44100)
//	lufs := meter.Integrated(samples)
//
// The meter measures a single channel. Callers with multi-channel audio
// pass one representative channel; the normalization engine uses channel 0,
// a deliberate simplification over a channel-weighted sum that keeps
// measurements comparable with the batches already processed this way.
//
// Digital silence measures as negative infinity, never as an error:
//
//	if math.IsInf(lufs, -1) {
//	    // nothing to normalize
//	}
package loudness
