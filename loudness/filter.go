// SPDX-License-Identifier: EPL-2.0

package loudness

import "math"

// biquad is a second-order IIR section in direct form II transposed.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// Analog prototype parameters of the two K-weighting stages. These exact
// values reproduce the BS.1770 reference coefficients at 48 kHz and let the
// stages be redesigned for any sample rate via the bilinear transform.
const (
	shelfGainDB = 3.999843853973347
	shelfQ      = 0.7071752369554196
	shelfFreq   = 1681.974450955533

	highpassQ    = 0.5003270373238773
	highpassFreq = 38.13547087602444
)

// newHighShelf designs stage 1, the head-effect modelling high shelf.
func newHighShelf(rate float64) biquad {
	a := math.Pow(10, shelfGainDB/40)
	w0 := 2 * math.Pi * shelfFreq / rate
	alpha := math.Sin(w0) / (2 * shelfQ)
	cosw := math.Cos(w0)
	sqrtA := math.Sqrt(a)

	a0 := (a + 1) - (a-1)*cosw + 2*sqrtA*alpha
	return biquad{
		b0: a * ((a + 1) + (a-1)*cosw + 2*sqrtA*alpha) / a0,
		b1: -2 * a * ((a - 1) + (a+1)*cosw) / a0,
		b2: a * ((a + 1) + (a-1)*cosw - 2*sqrtA*alpha) / a0,
		a1: 2 * ((a - 1) - (a+1)*cosw) / a0,
		a2: ((a + 1) - (a-1)*cosw - 2*sqrtA*alpha) / a0,
	}
}

// newHighPass designs stage 2, the 38 Hz high-pass that removes DC and
// subsonic content before energy integration.
func newHighPass(rate float64) biquad {
	w0 := 2 * math.Pi * highpassFreq / rate
	alpha := math.Sin(w0) / (2 * highpassQ)
	cosw := math.Cos(w0)

	a0 := 1 + alpha
	return biquad{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}
