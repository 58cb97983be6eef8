// SPDX-License-Identifier: EPL-2.0

// Package asynccore provides the reactor-driven audio dataflow, tone
// detection, and hierarchical state machine primitives used to build
// single-threaded, event-driven radio/telephony applications, plus the
// file-decoding convenience layer they sit on top of.
//
// # Layers
//
//   - reactor: the cooperative event loop (timers, fd watches, signals).
//   - pipe: push-based audio dataflow with explicit back-pressure.
//   - tone: a Goertzel tone detector, a pipe.Sink.
//   - fsm: a generic hierarchical finite state machine.
//   - adapter: bridges between pull-style audio.Source decoders and the
//     push-style pipe.
//
// # Quick Start
//
// Decoding a file and resampling it to mono 16-bit PCM does not need any
// of the above — it is a convenience wrapper over the audio subpackage:
//
//	decoder := wav.Decoder{}
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := asynccore.ResampleToMono16(src, 8000, 4096)
//
// Wiring a decoded file through the reactor-driven pipe into a tone
// detector looks like:
//
//	r := reactor.New()
//	splitter := pipe.NewAudioSplitter(r)
//	detector := tone.NewDetector(1000, 205)
//	splitter.AddSink(detector, false)
//	pull := adapter.NewPullSource(r, src, splitter)
//	pull.Start()
//	r.Run(ctx)
//
// # Format Decoders
//
// Each format has its own decoder, returning an audio.Source:
//
//	wavDecoder := wav.Decoder{}
//	src, _ := wavDecoder.Decode(reader)
//
// wav, mp3, vorbis, and aiff are all supported under formats/.
package asynccore

// StateMachineDebug gates the fsm package's optional state-transition
// trace logging. It is the Go analogue of the original's compile-time
// ASYNC_STATE_MACHINE_DEBUG toggle, checked at runtime instead since Go has
// no preprocessor.
var StateMachineDebug bool
