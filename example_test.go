// SPDX-License-Identifier: EPL-2.0

package loudnorm_test

import (
	"bytes"
	"fmt"
	"math"

	"github.com/bcdj/loudnorm/formats/wav"
	"github.com/bcdj/loudnorm/loudness"
	"github.com/bcdj/loudnorm/task"
)

// Example_measureLoudness decodes an in-memory WAV file and measures its
// integrated loudness.
func Example_measureLoudness() {
	// A one second 997 Hz sine at half amplitude, about -10 LUFS.
	samples := make([]float32, 48000)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*997*float64(i)/48000))
	}
	wavData := new(bytes.Buffer)
	wav.WriteFloat32(wavData, 48000, 1, samples)

	src, err := wav.Decoder{}.Decode(wavData)
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}
	defer src.Close()

	buf := make([]float32, 0, 48000)
	tmp := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil || n == 0 {
			break
		}
	}

	meter, err := loudness.NewMeter(48000)
	if err != nil {
		fmt.Printf("meter error: %v\n", err)
		return
	}
	lufs := meter.Integrated(buf)
	fmt.Printf("in expected range: %v\n", lufs > -11 && lufs < -9)
	// Output: in expected range: true
}

// Example_gainConversion shows the gain math normalization relies on.
func Example_gainConversion() {
	gainDB := loudness.GainDB(-20.0, -14.0)
	fmt.Printf("gain: %.1f dB\n", gainDB)
	fmt.Printf("linear factor: %.3f\n", loudness.ToLinear(gainDB))
	// Output:
	// gain: 6.0 dB
	// linear factor: 1.995
}

// Example_scanDirectory submits a scan task and receives its events. The
// orchestrator delivers every event from a single goroutine, terminal
// event last.
func Example_scanDirectory() {
	done := make(chan task.Event, 1)
	sink := task.SinkFunc(func(ev task.Event) {
		if ev.Type.Terminal() {
			done <- ev
		}
	})

	o := task.NewOrchestrator(sink, nil)
	defer o.Close()

	if _, err := o.Submit(&task.ScanTask{Dir: "/music", Recursive: true}); err != nil {
		fmt.Printf("submit error: %v\n", err)
		return
	}

	ev := <-done
	for _, rec := range ev.Records {
		fmt.Println(rec.DisplayName)
	}
}
