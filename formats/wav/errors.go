package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("unsupported WAV sample encoding")
	ErrMissingDataChunk     = errors.New("WAV file has no data chunk")
	ErrNoSamples            = errors.New("no samples to write")
)
