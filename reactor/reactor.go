// SPDX-License-Identifier: EPL-2.0

package reactor

import (
	"container/heap"
	"context"
	"time"
)

// Reactor runs a single-threaded cooperative event loop: a min-heap of
// armed timers plus, on Unix builds, a set of watched file descriptors.
// All Timer and FdWatch callbacks registered with a given Reactor fire on
// whichever goroutine calls Run.
type Reactor struct {
	timers  timerHeap
	clock   func() time.Time
	watches map[int]*FdWatch
}

// New creates a Reactor ready to accept timers and fd watches. Nothing runs
// until Run is called.
func New() *Reactor {
	return &Reactor{
		clock:   time.Now,
		watches: make(map[int]*FdWatch),
	}
}

func (r *Reactor) now() time.Time {
	return r.clock()
}

// AddTimer attaches a timer to this reactor. The timer remains disarmed
// until SetEnable(true) is called on it.
func (r *Reactor) AddTimer(t *Timer) {
	t.reactor = r
	t.heapIndex = -1
}

func (r *Reactor) requeue(t *Timer) {
	if t.heapIndex >= 0 {
		heap.Fix(&r.timers, t.heapIndex)
		return
	}
	heap.Push(&r.timers, t)
}

func (r *Reactor) dequeue(t *Timer) {
	if t.heapIndex >= 0 {
		heap.Remove(&r.timers, t.heapIndex)
	}
}

// Run drives the event loop until ctx is cancelled. Each iteration waits
// for either the next timer deadline or fd activity, whichever comes
// first, then dispatches exactly the events that are ready before looping
// again. Run returns ctx.Err() when the context is cancelled.
func (r *Reactor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var timeout time.Duration
		if len(r.timers) == 0 {
			timeout = -1 // block on fd activity only; with no watches pollFds returns at once
		} else {
			timeout = r.timers[0].deadline.Sub(r.now())
			if timeout < 0 {
				timeout = 0
			}
		}

		r.pollFds(timeout)
		r.fireExpiredTimers()
	}
}

func (r *Reactor) fireExpiredTimers() {
	now := r.now()
	for len(r.timers) > 0 && !r.timers[0].deadline.After(now) {
		t := heap.Pop(&r.timers).(*Timer)
		t.heapIndex = -1
		if t.periodic {
			t.deadline = now.Add(t.interval)
			heap.Push(&r.timers, t)
		} else {
			t.enabled = false
		}
		t.expired.Emit(t)
	}
}

// timerHeap orders timers by deadline; it implements container/heap.Interface.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	return h[i].deadline.Before(h[j].deadline)
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.heapIndex = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.heapIndex = -1
	*h = old[:n-1]
	return t
}
