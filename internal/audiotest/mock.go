// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio.Source implementations for
// exercising the decode and resample pipeline without real encoded files.
// It doesn't import audio to avoid an import cycle with audio's own tests.
package audiotest

import (
	"io"
	"math"
)

// waveformFunc generates one sample for a given per-channel sample index.
type waveformFunc func(sample, channel int) float32

// MockSource generates deterministic float32 audio for tests, driven by a
// waveform function evaluated per sample/channel pair.
type MockSource struct {
	sampleRate    int
	channels      int
	totalFrames   int
	framesEmitted int
	waveform      waveformFunc
}

// NewMockSource builds a source that yields totalFrames frames of
// sampleRate/channels audio, each sample computed by waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource builds a source that yields totalFrames frames of zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 { return 0 })
}

// NewSineSource builds a source yielding a sine wave at frequency Hz,
// identical across every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(sample, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource builds a source yielding value on every sample.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again from the start —
// benchmarks use this to re-run the same synthetic stream every iteration
// without reallocating a fresh MockSource.
func (m *MockSource) Reset() {
	m.framesEmitted = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.framesEmitted >= m.totalFrames {
		return 0, io.EOF
	}

	framesWanted := len(dst) / m.channels
	framesLeft := m.totalFrames - m.framesEmitted
	frames := min(framesWanted, framesLeft)

	for f := range frames {
		sample := m.framesEmitted + f
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(sample, ch)
		}
	}

	m.framesEmitted += frames
	written := frames * m.channels

	if m.framesEmitted >= m.totalFrames {
		return written, io.EOF
	}
	return written, nil
}
