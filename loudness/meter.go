// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"fmt"
	"math"
)

// Gating and block constants from ITU-R BS.1770-4.
const (
	blockSeconds     = 0.400 // gating block length
	blockOverlap     = 0.75
	absoluteGateLUFS = -70.0
	relativeGateLU   = -10.0
	energyOffset     = -0.691 // loudness = -0.691 + 10*log10(z)
)

// minSampleRate is the lowest rate the K-weighting filter design stays
// valid for; the pre-filter shelf corner sits near 1.68 kHz and needs
// headroom below Nyquist.
const minSampleRate = 4000

// Meter measures integrated loudness (LUFS) of a single-channel signal
// per ITU-R BS.1770-4: K-weighting pre-filter, 400 ms gating blocks with
// 75% overlap, -70 LUFS absolute gate and -10 LU relative gate.
//
// A Meter is parameterized by sample rate and can be re-parameterized with
// SetRate between measurements. It keeps no state across Integrated calls
// but is not safe for concurrent use; the task orchestrator guarantees a
// single active task touches it at a time.
type Meter struct {
	rate     int
	shelf    biquad
	highpass biquad
}

// NewMeter creates a meter for the given sample rate.
func NewMeter(rate int) (*Meter, error) {
	m := &Meter{}
	if err := m.SetRate(rate); err != nil {
		return nil, err
	}
	return m, nil
}

// Rate returns the sample rate the meter is currently parameterized for.
func (m *Meter) Rate() int { return m.rate }

// SetRate re-parameterizes the meter for a new sample rate, redesigning the
// K-weighting filter stages.
func (m *Meter) SetRate(rate int) error {
	if rate < minSampleRate {
		return fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, rate)
	}

	m.rate = rate
	m.shelf = newHighShelf(float64(rate))
	m.highpass = newHighPass(float64(rate))
	return nil
}

// Integrated returns the gated integrated loudness of samples in LUFS.
// Digital silence, or a signal shorter than one 400 ms gating block,
// yields math.Inf(-1).
func (m *Meter) Integrated(samples []float32) float64 {
	blockFrames := int(math.Round(blockSeconds * float64(m.rate)))
	if len(samples) < blockFrames || blockFrames == 0 {
		return math.Inf(-1)
	}

	// K-weighting: stage 1 shelf, stage 2 high-pass, fresh state per call.
	weighted := make([]float64, len(samples))
	shelf, highpass := m.shelf, m.highpass
	for i, s := range samples {
		weighted[i] = highpass.process(shelf.process(float64(s)))
	}

	step := int(float64(blockFrames) * (1 - blockOverlap))
	if step < 1 {
		step = 1
	}
	numBlocks := (len(weighted)-blockFrames)/step + 1

	// Mean-square energy per gating block.
	energies := make([]float64, numBlocks)
	for j := 0; j < numBlocks; j++ {
		start := j * step
		sum := 0.0
		for _, v := range weighted[start : start+blockFrames] {
			sum += v * v
		}
		energies[j] = sum / float64(blockFrames)
	}

	// Absolute gate at -70 LUFS.
	absGated := energies[:0:0]
	for _, z := range energies {
		if blockLoudness(z) > absoluteGateLUFS {
			absGated = append(absGated, z)
		}
	}
	if len(absGated) == 0 {
		return math.Inf(-1)
	}

	// Relative gate 10 LU below the loudness of the absolutely gated set.
	relThreshold := blockLoudness(mean(absGated)) + relativeGateLU
	sum, count := 0.0, 0
	for _, z := range absGated {
		if blockLoudness(z) > relThreshold {
			sum += z
			count++
		}
	}
	if count == 0 {
		return math.Inf(-1)
	}

	return blockLoudness(sum / float64(count))
}

// blockLoudness maps a mean-square energy to loudness in LUFS.
func blockLoudness(z float64) float64 {
	return energyOffset + 10*math.Log10(z)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
