// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resampler streams from src to a target sample rate using
// tphakala/go-audio-resampling, preserving channel count. When src already
// runs at dstRate it is a pass-through; no resampling library instance is
// built in that case.
type Resampler struct {
	src      Source
	dstRate  int
	channels int

	rs resampling.Resampler // nil when src.SampleRate() == dstRate

	srcBuf  []float32
	in64    []float64
	pending []float32 // resampled output not yet delivered to the caller
	eof     bool
}

// NewResampler builds a Resampler reading from src and producing dstRate
// audio at src's channel count.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		srcBuf:   make([]float32, 4096),
	}

	if src.SampleRate() != dstRate {
		config := &resampling.Config{
			InputRate:  float64(src.SampleRate()),
			OutputRate: float64(dstRate),
			Channels:   channels,
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		}
		rs, err := resampling.New(config)
		if err != nil {
			// config is derived entirely from src's own reported rate and
			// channel count, so a construction failure here means src
			// itself reports a rate/channel combination the resampler
			// can't handle; there's no sane degraded mode to fall back to.
			panic(fmt.Sprintf("audio: building resampler: %v", err))
		}
		r.rs = rs
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples produces dst samples at r.dstRate. dst length must be a
// multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.rs == nil {
		return r.src.ReadSamples(dst)
	}

	for len(r.pending) == 0 {
		if r.eof {
			return 0, io.EOF
		}

		n, err := r.src.ReadSamples(r.srcBuf)
		if n > 0 {
			if perr := r.process(r.srcBuf[:n]); perr != nil {
				return 0, fmt.Errorf("%w", perr)
			}
		}
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	n := copy(dst, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// process feeds in through the resampling library and appends whatever it
// produces to the pending output queue. Quality resamplers buffer
// internally and may return no output for a given input chunk, which is
// not an error.
func (r *Resampler) process(in []float32) error {
	if cap(r.in64) < len(in) {
		r.in64 = make([]float64, len(in))
	}
	r.in64 = r.in64[:len(in)]
	for i, v := range in {
		r.in64[i] = float64(v)
	}

	out, err := r.rs.Process(r.in64)
	if err != nil {
		return err
	}

	base := len(r.pending)
	r.pending = append(r.pending, make([]float32, len(out))...)
	for i, v := range out {
		r.pending[base+i] = float32(v)
	}
	return nil
}
