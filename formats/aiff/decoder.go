// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio via go-audio/aiff into an audio.Source.
package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/sm0svx/asynccore/audio"
)

// aiffReader narrows aiff.Decoder to what source needs, so tests can
// substitute a fake without decoding real AIFF bytes.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps a go-audio/aiff decoder as an audio.Source, normalizing its
// integer PCM output to float32 by bitDepth.
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int

	intBuf *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.intBuf == nil {
		return 4096
	}
	return cap(s.intBuf.Data)
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst)), Format: s.dec.Format()}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	scale := pcmScale(s.bitDepth)
	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) / scale
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

// pcmScale returns the normalization divisor for an AIFF integer sample at
// the given bit depth, defaulting to 16-bit when bitDepth is unrecognized.
func pcmScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// Decoder parses an AIFF stream into an audio.Source. Only 16-bit PCM is
// currently supported.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = newByteSeeker(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffChunks
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// byteSeeker implements io.ReadSeeker over an in-memory byte slice, for
// AIFF readers that didn't already provide seeking (go-audio/aiff requires
// one regardless of whether the format actually needs random access).
type byteSeeker struct {
	data   []byte
	offset int64
}

func newByteSeeker(data []byte) *byteSeeker {
	return &byteSeeker{data: data}
}

func (bs *byteSeeker) Read(p []byte) (int, error) {
	if bs.offset >= int64(len(bs.data)) {
		return 0, io.EOF
	}
	n := copy(p, bs.data[bs.offset:])
	bs.offset += int64(n)
	return n, nil
}

func (bs *byteSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = bs.offset + offset
	case io.SeekEnd:
		next = int64(len(bs.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position")
	}
	bs.offset = next
	return next, nil
}
