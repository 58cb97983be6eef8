// SPDX-License-Identifier: EPL-2.0

// Package tone implements a Goertzel-algorithm tone detector: a Sink that
// watches a mono 8 kHz sample stream for a configured frequency and
// reports presence with hysteretic on/off transitions.
//
//	d := tone.NewDetector(1000, 205)
//	d.Activated().Connect(func(active bool) { ... })
//	d.ValueChanged().Connect(func(magnitude float64) { ... })
//	d.WriteSamples(samples)
//
// The detector never back-pressures: WriteSamples always reports the full
// input length accepted, matching the original's "never drops samples or
// blocks" contract.
package tone
