package reactor

import "time"

// Timer is a one-shot or periodic timer armed against a Reactor's clock.
// Construct with NewTimer, then add it to a Reactor with AddTimer before
// enabling it.
type Timer struct {
	interval time.Duration
	periodic bool
	enabled  bool
	deadline time.Time
	expired  Signal[*Timer]

	heapIndex int // maintained by the reactor's timer heap; -1 when not queued
	reactor   *Reactor
}

// NewTimer creates a timer with the given interval. If periodic is false the
// timer fires once and disables itself; if true it re-arms immediately after
// firing. The timer is not enabled and not attached to any Reactor until
// AddTimer and SetEnable(true) are both called.
func NewTimer(interval time.Duration, periodic bool) *Timer {
	return &Timer{
		interval:  interval,
		periodic:  periodic,
		heapIndex: -1,
	}
}

// Expired returns the signal emitted when the timer fires. The callback
// receives the timer itself so one handler can be shared across timers.
func (t *Timer) Expired() *Signal[*Timer] {
	return &t.expired
}

// SetEnable arms or disarms the timer. Disabling a pending timer removes it
// from its Reactor's queue; re-enabling restarts the interval from now.
// Idempotent: enabling an already-enabled timer, or disabling an already
// disabled one, is a no-op.
func (t *Timer) SetEnable(enable bool) {
	if t.reactor == nil {
		t.enabled = enable
		return
	}
	if enable && !t.enabled {
		t.deadline = t.reactor.now().Add(t.interval)
		t.enabled = true
		t.reactor.requeue(t)
	} else if !enable && t.enabled {
		t.enabled = false
		t.reactor.dequeue(t)
	}
}

// Enabled reports whether the timer is currently armed.
func (t *Timer) Enabled() bool {
	return t.enabled
}

// SetInterval changes the timer's period. Takes effect on the next arm; it
// does not reschedule a timer that is already pending.
func (t *Timer) SetInterval(interval time.Duration) {
	t.interval = interval
}

