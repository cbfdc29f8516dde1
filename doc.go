// SPDX-License-Identifier: EPL-2.0

// Package loudnorm normalizes audio files to a target integrated
// loudness (LUFS, ITU-R BS.1770).
//
// The library splits into focused subpackages:
//
//   - audio: the Source interface, decoder registry and in-memory Buffer
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - loudness: the integrated loudness meter and gain conversions
//   - engine: per-file normalization and original-file disposition
//   - task: the background orchestrator, scan and normalize tasks
//   - logger: console + rotated file logging setup for applications
//
// Typical batch use goes through task.Orchestrator, which runs one scan
// or normalize task at a time on a background goroutine, delivers ordered
// progress and terminal events, and supports cooperative cancellation.
// For one-off synchronous use this package offers NormalizeFile:
//
//	res, err := loudnorm.NormalizeFile("in.mp3", "out.wav", -14.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Message)
//
// Output is always 32-bit float WAV at the source's sample rate and
// channel count.
package loudnorm
