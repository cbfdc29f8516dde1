// SPDX-License-Identifier: EPL-2.0

package loudnorm

import (
	"github.com/bcdj/loudnorm/engine"
	"github.com/bcdj/loudnorm/loudness"
)

// DefaultTargetLUFS is a sensible target for music playback. The
// documented operating envelope is -24.0 to -5.0 LUFS.
const DefaultTargetLUFS = engine.DefaultTargetLUFS

// NormalizeFile measures sourcePath's integrated loudness, applies the
// gain needed to reach targetLUFS and writes the result to destPath as
// 32-bit float WAV. It is a synchronous one-shot convenience around the
// engine; batch work with progress and cancellation should go through
// task.Orchestrator instead.
func NormalizeFile(sourcePath, destPath string, targetLUFS float64) (engine.Result, error) {
	meter, err := loudness.NewMeter(48000)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.New().NormalizeAndSave(meter, targetLUFS, sourcePath, destPath, nil)
}
