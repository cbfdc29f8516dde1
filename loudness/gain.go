// SPDX-License-Identifier: EPL-2.0

package loudness

import "math"

// GainDB returns the gain in dB that moves a signal measured at measured
// LUFS to target LUFS.
func GainDB(measured, target float64) float64 {
	return target - measured
}

// ToLinear converts a gain in dB to a linear amplitude factor.
func ToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// ToDecibels converts a linear amplitude factor to dB.
func ToDecibels(linear float64) float64 {
	return 20 * math.Log10(linear)
}
