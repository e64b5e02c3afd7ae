package discovery

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the recommended query-input debounce window.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid query input into one search cycle. Triggering it
// again before the window elapses discards the pending cycle, and cancels the
// context of a cycle already in flight, so a slow stale fetch can never
// overwrite a newer result set.
type Debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the debounce window. Any previously
// scheduled or running cycle is superseded: its timer is stopped and its
// context canceled.
func (d *Debouncer) Trigger(parent context.Context, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.window, func() {
		fn(ctx)
	})
}

// Stop discards any pending cycle and cancels the running one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
