// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is the pull-style audio contract every decoder in formats/ and
// every processor in this package (Resampler, MonoMixer) implements.
// cmd/asynccored chains decoders and processors together purely through
// this interface before handing the result to adapter.NewPullSource.
type Source interface {
	// SampleRate reports the stream's rate in Hz.
	SampleRate() int
	// Channels reports the interleaved channel count (1 = mono, 2 = stereo, ...).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1]
	// and reports how many were written. A final partial read may return
	// n > 0 together with io.EOF; once the stream is exhausted it
	// returns (0, io.EOF).
	ReadSamples(dst []float32) (n int, err error)
	// BufSize reports a read size well suited to this source, for callers
	// sizing their own buffers.
	BufSize() int
	// Close releases any resources (open files, decoder state) src holds.
	Close() error
}

// Decoder turns a raw input stream into a Source. Each package under
// formats/ provides exactly one Decoder for the container it understands.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps a format key ("wav", "mp3", "ogg", "aiff", ...) to the
// Decoder that handles it. cmd/asynccored builds one at startup and
// selects a Decoder by the input file's extension.
type Registry struct {
	codecs map[string]Decoder
	mtx    *sync.RWMutex
}

// NewRegistry returns an empty Registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder), mtx: &sync.RWMutex{}}
}

// Register associates format with d, replacing any previous entry.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.codecs[format] = d
}

// Get looks up the Decoder registered for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	d, ok := r.codecs[format]
	return d, ok
}
