package watchdog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchdogTerminatesOnStaleHeartbeat(t *testing.T) {
	terminated := make(chan time.Duration, 1)
	w := New(30*time.Millisecond, func(staleness time.Duration) {
		terminated <- staleness
	})
	w.Interval = 5 * time.Millisecond

	go w.Run()

	select {
	case staleness := <-terminated:
		require.Greater(t, staleness, 30*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not terminate on stale heartbeat")
	}
}

func TestWatchdogStaysAliveWithRegularPings(t *testing.T) {
	terminated := make(chan struct{}, 1)
	w := New(30*time.Millisecond, func(staleness time.Duration) {
		terminated <- struct{}{}
	})
	w.Interval = 5 * time.Millisecond

	go w.Run()
	defer w.Stop()

	deadline := time.After(150 * time.Millisecond)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Ping()
		case <-deadline:
			select {
			case <-terminated:
				t.Fatal("watchdog terminated despite regular pings")
			default:
			}
			return
		}
	}
}

func TestWatchdogStopPreventsTermination(t *testing.T) {
	terminated := make(chan struct{}, 1)
	w := New(10*time.Millisecond, func(staleness time.Duration) {
		terminated <- struct{}{}
	})
	w.Interval = 2 * time.Millisecond

	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	select {
	case <-terminated:
		t.Fatal("Terminate should not fire after Stop")
	default:
	}
}
