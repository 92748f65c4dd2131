// Package watchdog implements a heartbeat contract: a Ping the event
// loop must call regularly, and a background monitor — the one thread
// permitted outside the loop — that terminates the process if Ping goes
// stale. The heartbeat clock uses
// golang.org/x/sys/unix.ClockGettime(CLOCK_MONOTONIC, ...), the same
// package spawn.Spawn already depends on for unix.Access.
package watchdog

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"driftwl/internal/logx"
)

// monotonicNanos returns CLOCK_MONOTONIC time in nanoseconds.
func monotonicNanos() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return time.Now().UnixNano()
	}
	return ts.Nano()
}

// TerminateFunc is called once when the heartbeat goes stale. There is no
// built-in default: New stores the function it is given as is.
type TerminateFunc func(staleness time.Duration)

// Watchdog monitors a heartbeat on a fixed interval and calls Terminate
// if Ping has not been called within Timeout.
type Watchdog struct {
	last      atomic.Int64
	Timeout   time.Duration
	Interval  time.Duration
	Terminate TerminateFunc

	stop chan struct{}
}

// New returns a Watchdog with the given timeout, default-checking every
// timeout/4 and terminating via terminate.
func New(timeout time.Duration, terminate TerminateFunc) *Watchdog {
	w := &Watchdog{
		Timeout:   timeout,
		Interval:  timeout / 4,
		Terminate: terminate,
		stop:      make(chan struct{}),
	}
	w.last.Store(monotonicNanos())
	return w
}

// Ping records a heartbeat, called once per event-loop iteration.
func (w *Watchdog) Ping() {
	w.last.Store(monotonicNanos())
}

// Run blocks, checking staleness every Interval, until Stop is called or
// the heartbeat goes stale — in which case it calls Terminate once and
// returns.
func (w *Watchdog) Run() {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			staleness := time.Duration(monotonicNanos() - w.last.Load())
			if staleness > w.Timeout {
				logx.Error("watchdog: heartbeat stale, terminating", "staleness", staleness)
				w.Terminate(staleness)
				return
			}
		}
	}
}

// Stop ends a running Run loop without invoking Terminate.
func (w *Watchdog) Stop() {
	close(w.stop)
}
