package pipe

// Sink consumes sample frames pushed by an upstream Source. WriteSamples
// must return the number of leading samples of the slice it accepted;
// returning fewer than len(samples) is back-pressure — the caller must not
// write again until the sink calls ResumeOutput on the SourceHandle it was
// given via SetHandle.
type Sink interface {
	// WriteSamples accepts as many leading samples as it can and reports
	// how many. It must not be called again until any previously reported
	// short write has been followed by a ResumeOutput callback.
	WriteSamples(samples []float32) int

	// FlushSamples tells the sink that no more samples follow the ones
	// already written. The sink must call AllSamplesFlushed on its
	// SourceHandle once it, and everything downstream of it, has drained.
	FlushSamples()

	// SetHandle binds the callback surface the sink uses to signal its
	// upstream source. It is called once, when the sink is attached to a
	// Source.
	SetHandle(h SourceHandle)
}

// SourceHandle is the callback surface a Sink uses to talk back to its
// upstream Source.
type SourceHandle interface {
	// ResumeOutput tells the source that a previously back-pressured sink
	// is ready to receive samples again.
	ResumeOutput()

	// AllSamplesFlushed acknowledges that a flush initiated by the source
	// has fully propagated through this sink.
	AllSamplesFlushed()
}

// Source is a node that fans its output out to attached sinks.
type Source interface {
	// AddSink attaches sink as a new downstream branch. If managed is
	// true, the Source owns the sink's lifetime and is responsible for
	// closing it when the branch is removed.
	AddSink(sink Sink, managed bool)

	// RemoveSink detaches sink. Removing a sink that is not attached is a
	// programming error.
	RemoveSink(sink Sink)

	// RemoveAllSinks detaches every sink.
	RemoveAllSinks()

	// EnableSink toggles whether an attached sink currently receives
	// samples.
	EnableSink(sink Sink, enable bool)
}
