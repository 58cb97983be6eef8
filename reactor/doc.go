// SPDX-License-Identifier: EPL-2.0

// Package reactor provides a single-threaded, cooperative event loop.
//
// A Reactor multiplexes timers and (on Unix builds) file descriptor
// readiness onto one goroutine. Every callback registered with a Reactor —
// a timer expiry, an fd becoming readable, or a Signal emission triggered
// from inside one of those callbacks — runs to completion before the next
// one starts. Nothing in this package, nor in the pipe, tone, or fsm
// packages built on top of it, uses a mutex: the Reactor's own goroutine is
// the only mutator.
//
// # Timers
//
//	r := reactor.New()
//	t := reactor.NewTimer(500*time.Millisecond, false)
//	t.Expired().Connect(func(*reactor.Timer) { fmt.Println("fired") })
//	r.AddTimer(t)
//	t.SetEnable(true)
//	r.Run(ctx)
//
// # Signals
//
// Signal[T] is the Go stand-in for the original SigC++ signal/slot
// connections: a list of callback closures with explicit Connect and
// DisconnectAll, emitted synchronously in connection order.
package reactor
