// Package timer runs the once-a-second tick that advances the running entry.
package timer

import (
	"context"
	"sync"
	"time"
)

// Driver owns at most one periodic loop. Starting it again replaces the
// previous loop instead of stacking a second one.
type Driver struct {
	mu       sync.Mutex
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{interval: interval}
}

func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Start calls fire once per interval until ctx is done or Stop is called.
func (d *Driver) Start(ctx context.Context, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A fire racing with cancellation is dropped.
				if ctx.Err() != nil {
					return
				}
				fire()
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

func (d *Driver) stopLocked() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel = nil
	d.done = nil
}
