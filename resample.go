package asynccore

import (
	"fmt"
	"io"

	"github.com/sm0svx/asynccore/audio"
	"github.com/sm0svx/asynccore/utils"
)

// ResampleToMono16 decodes and reduces src to mono 16-bit PCM at targetRate,
// the shape every component downstream of a file decoder in this module
// ultimately wants: tone.Detector assumes a fixed mono sample rate
// (tone.SampleRate), and cmd/asynccored builds the same
// Resampler-then-MonoMixer pipeline this function wraps, just pushed
// through the reactor sample-by-sample instead of collected up front.
//
// src is read to completion; io.EOF from the pipeline ends the collection
// without being returned as an error.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	var pcm16 []int16
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}

		if err == io.EOF {
			return pcm16, targetRate, nil
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}
}
