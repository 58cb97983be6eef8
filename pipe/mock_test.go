package pipe

// mockSink is a test double implementing Sink with a configurable accept
// policy, mirroring the style of the corpus's mockSource test helper.
type mockSink struct {
	accept func(samples []float32) int

	handle SourceHandle

	received      []float32
	flushCalls    int
	writeCalls    int
	closed        bool
	flushComplete bool
}

func newMockSink(accept func(samples []float32) int) *mockSink {
	return &mockSink{accept: accept}
}

// acceptAll always consumes the whole slice offered to it.
func acceptAll(samples []float32) int { return len(samples) }

// acceptHalf consumes floor(len/2) samples, i.e. a persistent short write.
func acceptHalf(samples []float32) int { return len(samples) / 2 }

// acceptNone back-pressures every write completely.
func acceptNone(samples []float32) int { return 0 }

func (m *mockSink) WriteSamples(samples []float32) int {
	m.writeCalls++
	n := m.accept(samples)
	m.received = append(m.received, samples[:n]...)
	return n
}

func (m *mockSink) FlushSamples() {
	m.flushCalls++
}

func (m *mockSink) SetHandle(h SourceHandle) {
	m.handle = h
}

func (m *mockSink) Close() error {
	m.closed = true
	return nil
}

// ackFlush simulates this sink's downstream having fully drained.
func (m *mockSink) ackFlush() {
	m.flushComplete = true
	m.handle.AllSamplesFlushed()
}

// becomeReady simulates this sink's downstream becoming ready again after
// a short write, and tells the upstream splitter to retry.
func (m *mockSink) becomeReady(accept func([]float32) int) {
	m.accept = accept
	m.handle.ResumeOutput()
}

// mockSourceHandle records calls a splitter makes on its own upstream.
type mockSourceHandle struct {
	resumeCalls int
	flushCalls  int
}

func (h *mockSourceHandle) ResumeOutput()      { h.resumeCalls++ }
func (h *mockSourceHandle) AllSamplesFlushed() { h.flushCalls++ }
