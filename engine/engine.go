// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bcdj/loudnorm/audio"
	"github.com/bcdj/loudnorm/formats/aiff"
	"github.com/bcdj/loudnorm/formats/mp3"
	"github.com/bcdj/loudnorm/formats/vorbis"
	"github.com/bcdj/loudnorm/formats/wav"
	"github.com/bcdj/loudnorm/loudness"
)

// DefaultTargetLUFS is the target loudness used when a caller has no
// preference. The documented operating envelope is -24.0 to -5.0 LUFS;
// the engine does not enforce it.
const DefaultTargetLUFS = -14.0

// silenceFloorLUFS is the level below which a source is treated as silent
// and copied unmodified instead of amplified.
const silenceFloorLUFS = -70.0

// peakCeiling is the post-limiting peak amplitude, about -0.2 dBFS, kept
// below full scale for headroom.
const peakCeiling = 0.977

// defaultMaxInputBytes caps how large a source file the engine will load
// into memory. Whole-file processing on an unbounded input would abort the
// process on allocation failure, so oversized inputs are rejected up front.
const defaultMaxInputBytes = 1 << 30

// Canceller reports whether cooperative cancellation has been requested.
// The zero check happens at defined checkpoints only; a running scaling or
// measurement pass is never interrupted mid-algorithm.
type Canceller interface {
	Cancelled() bool
}

// DefaultRegistry returns a decoder registry with all built-in formats
// registered: .wav, .mp3, .ogg and .aiff/.aif.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})
	reg.Register(".mp3", mp3.Decoder{})
	reg.Register(".ogg", vorbis.Decoder{})
	reg.Register(".aiff", aiff.Decoder{})
	reg.Register(".aif", aiff.Decoder{})
	return reg
}

// Result reports the outcome of a successful NormalizeAndSave call.
type Result struct {
	// Message is a human-readable summary safe to surface to a user.
	Message string
	// MeasuredLUFS is the integrated loudness of the source. Only valid
	// when Measured is true; a silent source measures as -Inf and is
	// reported with Measured false.
	MeasuredLUFS float64
	Measured     bool
	// PeakLimited is true when gain pushed the peak past full scale and
	// the buffer was rescaled back under the ceiling.
	PeakLimited bool
	// SilentCopy is true when the source was below the silence floor and
	// was re-encoded without gain.
	SilentCopy bool
	// OutputPath is the destination the normalized audio was written to.
	OutputPath string
}

// Engine normalizes single audio files to a target integrated loudness and
// writes the result as 32-bit float WAV. An Engine is stateless between
// calls and safe to reuse; the loudness meter passed per call is not.
type Engine struct {
	log      *zap.Logger
	registry *audio.Registry
	maxBytes int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRegistry replaces the decoder registry used to read sources.
func WithRegistry(reg *audio.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithMaxInputBytes overrides the input file size limit. Zero or negative
// disables the limit.
func WithMaxInputBytes(n int64) Option {
	return func(e *Engine) { e.maxBytes = n }
}

// New creates an Engine with the built-in decoder registry, a nop logger
// and a 1 GiB input limit, adjustable via options.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      zap.NewNop(),
		registry: DefaultRegistry(),
		maxBytes: defaultMaxInputBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NormalizeAndSave reads sourcePath, measures its integrated loudness on
// channel 0, applies the gain needed to reach targetLUFS, limits the peak
// to stay under full scale, and writes the result to destPath as 32-bit
// float WAV.
//
// Sources below the silence floor are copied unmodified (still
// re-encoded) rather than amplified. Multi-channel input is measured on
// channel 0 only, a deliberate simplification; the gain still applies to
// every channel.
//
// cancel may be nil. It is polled before reading, after measuring and
// before writing; a cancelled call returns ErrCancelled and leaves no
// partial destination file. All other failures return one of this
// package's sentinel errors, wrapped with detail.
func (e *Engine) NormalizeAndSave(meter *loudness.Meter, targetLUFS float64, sourcePath, destPath string, cancel Canceller) (Result, error) {
	log := e.log.With(zap.String("source", sourcePath), zap.String("dest", destPath))

	if cancelled(cancel) {
		return Result{}, fmt.Errorf("%w before reading %s", ErrCancelled, filepath.Base(sourcePath))
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		}
		log.Warn("stat failed", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}
	if e.maxBytes > 0 && info.Size() > e.maxBytes {
		return Result{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, info.Size(), e.maxBytes)
	}

	buf, err := audio.ReadFile(sourcePath, e.registry)
	if err != nil {
		log.Warn("read failed", zap.Error(err))
		return Result{}, classifyReadError(err, sourcePath)
	}
	log.Debug("source read",
		zap.Int("rate", buf.Rate),
		zap.Int("channels", buf.Channels),
		zap.Int("frames", buf.Frames()))

	if meter.Rate() != buf.Rate {
		if err := meter.SetRate(buf.Rate); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrMeterInit, err)
		}
	}

	mono, err := buf.Channel(0)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEmptyOrCorrupt, err)
	}
	measured := meter.Integrated(mono)

	if cancelled(cancel) {
		return Result{}, fmt.Errorf("%w after measuring %s", ErrCancelled, filepath.Base(sourcePath))
	}

	res := Result{OutputPath: destPath}
	if isSilent(measured) {
		res.SilentCopy = true
		res.Message = fmt.Sprintf("%s is silent, copied unmodified", filepath.Base(sourcePath))
		log.Info("silent source, copying unmodified", zap.Float64("measured_lufs", measured))
	} else {
		res.Measured = true
		res.MeasuredLUFS = measured

		gainDB := loudness.GainDB(measured, targetLUFS)
		buf.ApplyGain(loudness.ToLinear(gainDB))

		if peak := buf.Peak(); peak > 1.0 {
			buf.ApplyGain(peakCeiling / peak)
			res.PeakLimited = true
			log.Info("peak limited", zap.Float64("peak", peak))
		}
		buf.Clamp()

		if res.PeakLimited {
			res.Message = fmt.Sprintf("normalized %s from %.1f to %.1f LUFS (peak limited)",
				filepath.Base(sourcePath), measured, targetLUFS)
		} else {
			res.Message = fmt.Sprintf("normalized %s from %.1f to %.1f LUFS",
				filepath.Base(sourcePath), measured, targetLUFS)
		}
		log.Info("gain applied",
			zap.Float64("measured_lufs", measured),
			zap.Float64("target_lufs", targetLUFS),
			zap.Float64("gain_db", gainDB),
			zap.Bool("peak_limited", res.PeakLimited))
	}

	if cancelled(cancel) {
		return Result{}, fmt.Errorf("%w before writing %s", ErrCancelled, filepath.Base(destPath))
	}

	if err := writeFloatWAV(destPath, buf); err != nil {
		log.Warn("write failed", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %s", ErrWriteFailure, filepath.Base(destPath))
	}
	log.Info("output written")
	return res, nil
}

// writeFloatWAV writes buf to path, creating the destination directory as
// needed and removing the partial file on failure.
func writeFloatWAV(path string, buf *audio.Buffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := wav.WriteFloat32(f, buf.Rate, buf.Channels, buf.Data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// classifyReadError maps a low-level read failure onto the engine's error
// taxonomy so callers never see raw OS error text.
func classifyReadError(err error, sourcePath string) error {
	base := filepath.Base(sourcePath)
	switch {
	case errors.Is(err, audio.ErrNoDecoder):
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, base)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, base)
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	default:
		return fmt.Errorf("%w: %s", ErrEmptyOrCorrupt, base)
	}
}

func isSilent(lufs float64) bool {
	return math.IsNaN(lufs) || math.IsInf(lufs, 0) || lufs < silenceFloorLUFS
}

func cancelled(c Canceller) bool {
	return c != nil && c.Cancelled()
}
