// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile means the stream didn't start with a valid FORM/AIFF
	// header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrOnlyPCM16bitSupported means the file's COMM chunk declared a bit
	// depth other than 16.
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit PCM AIFF is supported")

	// ErrUnsupportedAiffLayout means go-audio/aiff couldn't resolve a
	// Format for the file after ReadInfo.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrUnsupportedAiffChunks means the file's chunk structure was valid
	// enough to open but couldn't be decoded into PCM frames.
	ErrUnsupportedAiffChunks = errors.New("unsupported or malformed AIFF chunks")
)
