// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio via jfreymuth/oggvorbis into an
// audio.Source.
package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/sm0svx/asynccore/audio"
)

// oggReader narrows oggvorbis.Reader to what source needs, so tests can
// substitute a fake without decoding a real Ogg bitstream.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int

	frameBuf []float32 // scratch buffer sized in samples (frames * channels)
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

// ReadSamples reads whole frames from the decoder, which already hands
// back normalized float32 samples, so no bit-depth conversion is needed
// here — unlike the PCM-based decoders in formats/wav and formats/mp3.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	frames := len(dst) / s.channels
	needed := frames * s.channels
	if cap(s.frameBuf) < needed {
		s.frameBuf = make([]float32, needed)
	}
	s.frameBuf = s.frameBuf[:needed]

	framesRead, err := s.dec.Read(s.frameBuf)
	if framesRead == 0 {
		return 0, err
	}

	samplesRead := framesRead * s.channels
	copy(dst, s.frameBuf[:samplesRead])
	return samplesRead, err
}

// Decoder parses an Ogg Vorbis bitstream into an audio.Source.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
