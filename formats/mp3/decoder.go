// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio via hajimehoshi/go-mp3 into
// an audio.Source.
package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/sm0svx/asynccore/audio"
	"github.com/sm0svx/asynccore/utils"
)

// decodedChannels is fixed because go-mp3 always decodes to interleaved
// stereo PCM, regardless of the source file's original channel layout.
const decodedChannels = 2

// mp3Reader narrows gomp3.Decoder to the two methods source needs, so
// tests can substitute a fake without driving a real MP3 bitstream.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int

	buf []byte // scratch buffer for the next dst-sized read of PCM bytes
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	wantBytes := len(dst) * 2
	if cap(s.buf) < wantBytes {
		s.buf = make([]byte, wantBytes)
	}
	s.buf = s.buf[:wantBytes]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		return 0, err
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2]))
		dst[i] = utils.Int16ToFloat32(v)
	}

	return samples, err
}

// Decoder parses an MP3 bitstream into an audio.Source.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   decodedChannels,
		buf:        make([]byte, 8192),
	}, nil
}
