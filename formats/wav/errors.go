// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile means the stream didn't start with a RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedWavLayout means the "fmt " chunk wasn't where this
	// decoder's canonical 44-byte header layout expects it.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	// ErrOnlyPCM16bitSupported means the fmt chunk described anything
	// other than 16-bit integer PCM.
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	// ErrUnsupportedWavChunks means a "data" chunk wasn't found
	// immediately after the fmt chunk.
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
)
