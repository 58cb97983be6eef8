// SPDX-License-Identifier: EPL-2.0

// Package wav decodes canonical 16-bit PCM WAV files into an audio.Source,
// and writes mono 16-bit PCM back out as a WAV file (see pcm_16_writer.go).
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sm0svx/asynccore/audio"
	"github.com/sm0svx/asynccore/utils"
)

// headerSize is the canonical RIFF/WAVE header this decoder understands:
// a 12-byte RIFF/WAVE preamble, a 24-byte "fmt " chunk, and an 8-byte
// "data" chunk header immediately following it, with no extra chunks
// (LIST, fact, ...) in between.
const headerSize = 44

// defaultBufSamples sizes pcmSource's scratch buffer before the first
// ReadSamples call establishes the caller's preferred chunk size.
const defaultBufSamples = 2048

type pcmSource struct {
	r          io.Reader
	sampleRate int
	channels   int

	raw []byte // scratch buffer for the next dst-sized read of PCM bytes
}

func (s *pcmSource) SampleRate() int { return s.sampleRate }
func (s *pcmSource) Channels() int   { return s.channels }
func (s *pcmSource) Close() error    { return nil }

// BufSize reports the scratch buffer's current sample capacity, growing to
// match whatever dst length ReadSamples has last been called with.
func (s *pcmSource) BufSize() int {
	if cap(s.raw) == 0 {
		return defaultBufSamples
	}
	return cap(s.raw) / 2
}

// ReadSamples reads interleaved 16-bit PCM bytes and normalizes each frame
// to float32 in dst.
func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	wantBytes := len(dst) * 2
	if cap(s.raw) < wantBytes {
		s.raw = make([]byte, wantBytes)
	}
	s.raw = s.raw[:wantBytes]

	if wantBytes == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(s.r, s.raw)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w", err)
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.raw[2*i : 2*i+2]))
		dst[i] = utils.Int16ToFloat32(v)
	}

	if samples == 0 || err == io.ErrUnexpectedEOF {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder parses a canonical PCM WAV stream into an audio.Source.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if (n >= 4 && !bytes.HasPrefix(header[:4], []byte("RIFF"))) || (n >= 12 && !bytes.HasPrefix(header[8:12], []byte("WAVE"))) {
		return nil, ErrNotWavFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.HasPrefix(header[12:16], []byte("fmt ")) {
		return nil, ErrUnsupportedWavLayout
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	bitsPerSample := int(binary.LittleEndian.Uint16(header[34:36]))
	if audioFormat != 1 || bitsPerSample != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if !bytes.HasPrefix(header[36:40], []byte("data")) {
		return nil, ErrUnsupportedWavChunks
	}

	return &pcmSource{
		r:          r,
		sampleRate: int(binary.LittleEndian.Uint32(header[24:28])),
		channels:   int(binary.LittleEndian.Uint16(header[22:24])),
		raw:        make([]byte, 0, defaultBufSamples*2),
	}, nil
}
