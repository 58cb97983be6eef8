package adapter

import (
	"io"
	"time"

	"github.com/sm0svx/asynccore/audio"
	"github.com/sm0svx/asynccore/pipe"
	"github.com/sm0svx/asynccore/reactor"
)

// PullSource drives a pull-style audio.Source into a push-style pipe.Sink,
// one BufSize()-sized chunk per reactor timer tick, honoring back-pressure:
// a short write stops the ticker until the sink calls ResumeOutput, and
// io.EOF from the source triggers exactly one FlushSamples call.
type PullSource struct {
	src  audio.Source
	sink pipe.Sink
	tick *reactor.Timer

	buf     []float32
	pending []float32 // unaccepted remainder from the most recent short write

	eof     bool
	flushed bool
}

// NewPullSource builds a PullSource reading from src and writing into sink.
// It paces itself to src's real-time duration per chunk (BufSize samples at
// src's rate and channel count) rather than pumping as fast as the reactor
// loop allows, matching how a live playback device would feed the pipe.
// Nothing is read until Start is called.
func NewPullSource(r *reactor.Reactor, src audio.Source, sink pipe.Sink) *PullSource {
	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	channels := src.Channels()
	if channels <= 0 {
		channels = 1
	}
	frames := bufSize / channels
	var interval time.Duration
	if rate := src.SampleRate(); rate > 0 && frames > 0 {
		interval = time.Duration(float64(frames) / float64(rate) * float64(time.Second))
	}

	p := &PullSource{
		src:  src,
		sink: sink,
		buf:  make([]float32, bufSize),
	}
	sink.SetHandle(p)

	p.tick = reactor.NewTimer(interval, true)
	r.AddTimer(p.tick)
	p.tick.Expired().Connect(func(*reactor.Timer) { p.pump() })
	return p
}

// Start begins pumping chunks.
func (p *PullSource) Start() { p.tick.SetEnable(true) }

// Stop halts pumping without affecting anything already written downstream.
func (p *PullSource) Stop() { p.tick.SetEnable(false) }

// Flushed reports whether the sink has acknowledged the end-of-stream flush.
func (p *PullSource) Flushed() bool { return p.flushed }

func (p *PullSource) pump() {
	if len(p.pending) > 0 {
		p.retryPending()
		return
	}
	if p.eof {
		return
	}

	n, err := p.src.ReadSamples(p.buf)
	if n > 0 {
		p.offer(p.buf[:n])
	}
	if err == io.EOF {
		p.eof = true
		p.tick.SetEnable(false)
		if len(p.pending) == 0 {
			p.sink.FlushSamples()
		}
	}
}

func (p *PullSource) offer(samples []float32) {
	accepted := p.sink.WriteSamples(samples)
	if accepted < len(samples) {
		p.pending = append([]float32(nil), samples[accepted:]...)
		p.tick.SetEnable(false)
	}
}

func (p *PullSource) retryPending() {
	accepted := p.sink.WriteSamples(p.pending)
	p.pending = p.pending[accepted:]
	if len(p.pending) > 0 {
		return
	}
	if p.eof {
		p.sink.FlushSamples()
	}
}

// ResumeOutput implements pipe.SourceHandle.
func (p *PullSource) ResumeOutput() {
	if len(p.pending) > 0 {
		p.retryPending()
		if len(p.pending) > 0 {
			return
		}
	}
	if p.eof {
		return
	}
	p.tick.SetEnable(true)
}

// AllSamplesFlushed implements pipe.SourceHandle.
func (p *PullSource) AllSamplesFlushed() {
	p.flushed = true
}
