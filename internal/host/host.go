// README: In-process activation host; grants short, hard-deadlined run windows.
package host

import (
	"context"
	"log"
	"sync"
	"time"
)

// Runner executes one activation under the given deadline and calls complete
// exactly once.
type Runner interface {
	RunActivation(ctx context.Context, deadline time.Time, complete func(success bool)) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, deadline time.Time, complete func(success bool)) error

func (f RunnerFunc) RunActivation(ctx context.Context, deadline time.Time, complete func(success bool)) error {
	return f(ctx, deadline, complete)
}

type request struct {
	id            string
	earliestBegin time.Time
}

// Host imitates a deferred background-task scheduler: it accepts one pending
// request per identifier (last submission wins), never starts the runner
// before the requested instant, and grants it a bounded execution window. It
// runs one activation at a time.
type Host struct {
	runner Runner
	window time.Duration

	mu      sync.Mutex
	pending *request
	wake    chan struct{}
}

func New(runner Runner, window time.Duration) *Host {
	return &Host{runner: runner, window: window, wake: make(chan struct{}, 1)}
}

// Submit registers a deferred activation request, replacing any pending one
// with the same identifier.
func (h *Host) Submit(ctx context.Context, id string, earliestBegin time.Time) error {
	h.mu.Lock()
	h.pending = &request{id: id, earliestBegin: earliestBegin}
	h.mu.Unlock()
	h.notify()
	return nil
}

// Cancel drops the pending request with the given identifier, if any.
func (h *Host) Cancel(ctx context.Context, id string) error {
	h.mu.Lock()
	if h.pending != nil && h.pending.id == id {
		h.pending = nil
	}
	h.mu.Unlock()
	h.notify()
	return nil
}

func (h *Host) notify() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled, firing the runner each time a pending
// request comes due. The pending slot is cleared before the runner starts, so
// the runner (via its planner) is responsible for arming the follow-up wake.
func (h *Host) Run(ctx context.Context) {
	for {
		h.mu.Lock()
		pending := h.pending
		h.mu.Unlock()

		if pending == nil {
			select {
			case <-ctx.Done():
				return
			case <-h.wake:
			}
			continue
		}

		wait := time.Until(pending.earliestBegin)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-h.wake:
				// Request replaced or cancelled; re-evaluate.
				timer.Stop()
				continue
			case <-timer.C:
			}
		}

		h.mu.Lock()
		// The request may have been replaced while the timer ran.
		if h.pending == nil || h.pending != pending {
			h.mu.Unlock()
			continue
		}
		h.pending = nil
		h.mu.Unlock()

		h.fire(ctx)
	}
}

// fire grants one execution window and waits for the completion signal so
// activations never overlap.
func (h *Host) fire(ctx context.Context) {
	done := make(chan bool, 1)
	deadline := time.Now().Add(h.window)
	err := h.runner.RunActivation(ctx, deadline, func(success bool) {
		done <- success
	})
	if err != nil {
		log.Printf("host: activation refused: %v", err)
		return
	}
	select {
	case <-ctx.Done():
	case success := <-done:
		log.Printf("host: activation window closed: success=%v", success)
	}
}
