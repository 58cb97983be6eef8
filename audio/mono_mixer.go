// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes a multi-channel Source to mono by averaging the
// channels of each frame. tone.Detector's Goertzel coefficients assume a
// single-channel stream, so cmd/asynccored always terminates its decode
// pipeline in a MonoMixer regardless of how many channels the input file
// carries.
type MonoMixer struct {
	src Source

	// frames holds the interleaved source samples for one ReadSamples call
	// (len(dst) frames), reused across calls so steady-state ReadSamples
	// never allocates.
	frames []float32
}

// NewMonoMixer wraps src, exposing it as a single-channel Source.
func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with one mono sample per frame, averaging across
// m.src's channels. If m.src is already mono, reads pass straight through.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.frames) < needed {
		m.frames = make([]float32, needed)
	}
	m.frames = m.frames[:needed]

	n, err := m.src.ReadSamples(m.frames)
	if n == 0 {
		return 0, err
	}

	frames := n / channels
	scale := 1 / float32(channels)
	for f := range frames {
		var sum float32
		base := f * channels
		for c := range channels {
			sum += m.frames[base+c]
		}
		dst[f] = sum * scale
	}

	return frames, err
}
