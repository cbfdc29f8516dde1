// SPDX-License-Identifier: EPL-2.0

package loudness

import "errors"

var (
	ErrUnsupportedRate = errors.New("sample rate too low for K-weighting filter design")
)
