// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrInvalidDstSize is returned by Resampler.ReadSamples when the caller's
// buffer length isn't a whole number of frames for the source's channel
// count — there's no sane way to resample a partial frame.
var ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
