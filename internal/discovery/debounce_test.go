package discovery

import (
	"context"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	fired := make(chan string, 3)
	for _, q := range []string{"p", "pa", "paris"} {
		q := q
		d.Trigger(context.Background(), func(ctx context.Context) {
			fired <- q
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-fired:
		if got != "paris" {
			t.Fatalf("expected only the last query to fire, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("superseded query %q fired", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerCancelsInFlightCycle(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	canceled := make(chan struct{})

	d.Trigger(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(canceled)
	})

	<-started
	// A newer query arrives while the previous cycle is still running.
	d.Trigger(context.Background(), func(ctx context.Context) {})

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("stale cycle was not canceled by the newer query")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(context.Background(), func(ctx context.Context) {
		fired <- struct{}{}
	})
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(50 * time.Millisecond):
	}
}
