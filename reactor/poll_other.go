//go:build !unix

package reactor

import "time"

// pollFds on non-Unix builds only honors timers; fd watches are a no-op
// boundary stub there (see the package doc comment).
func (r *Reactor) pollFds(timeout time.Duration) {
	if timeout > 0 {
		time.Sleep(timeout)
	}
}
