// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrNoDecoder   = errors.New("no decoder registered for file extension")
	ErrEmptyData   = errors.New("audio stream contains no samples")
	ErrBadChannel  = errors.New("channel index out of range")
	ErrInvalidRate = errors.New("sample rate must be positive")
)
