// SPDX-License-Identifier: EPL-2.0

// Package pipe implements the audio pipe dataflow contract: a directed
// graph of nodes exchanging fixed-rate mono float32 sample frames with
// explicit, cooperative back-pressure.
//
// Every node is a Source, a Sink, or both:
//
//	type Source interface {
//	    AddSink(sink Sink, managed bool)
//	    RemoveSink(sink Sink)
//	    RemoveAllSinks()
//	    EnableSink(sink Sink, enable bool)
//	}
//	type Sink interface {
//	    WriteSamples(samples []float32) int
//	    FlushSamples()
//	    SetHandle(h SourceHandle)
//	}
//
// A sink's WriteSamples declares how many leading samples of the slice it
// accepted. Returning fewer than len(samples) is back-pressure: the caller
// must not present more samples until the sink calls ResumeOutput on its
// SourceHandle. Between a short write and the matching ResumeOutput, and
// between FlushSamples and AllSamplesFlushed, the source may not write.
//
// AudioSplitter is the fan-out node: it accepts one upstream stream and
// replicates it to N downstream sinks, each absorbing back-pressure
// independently without stalling the others. See the package-level
// AudioSplitter type for the buffering and flush algorithms.
package pipe
