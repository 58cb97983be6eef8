//go:build unix

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollFds waits up to timeout (or indefinitely if timeout < 0, or returns
// immediately if timeout == 0) for any enabled watch to become ready, then
// emits Activity on each one that is.
func (r *Reactor) pollFds(timeout time.Duration) {
	if len(r.watches) == 0 {
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return
	}

	fds := make([]unix.PollFd, 0, len(r.watches))
	order := make([]*FdWatch, 0, len(r.watches))
	for _, w := range r.watches {
		if !w.active {
			continue
		}
		var events int16 = unix.POLLIN
		if w.dir == DirectionWrite {
			events = unix.POLLOUT
		}
		fds = append(fds, unix.PollFd{Fd: int32(w.fd), Events: events})
		order = append(order, w)
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}

	n, err := unix.Poll(fds, ms)
	if err != nil || n <= 0 {
		return
	}

	for i, pfd := range fds {
		if pfd.Revents != 0 {
			order[i].activity.Emit(order[i])
		}
	}
}
