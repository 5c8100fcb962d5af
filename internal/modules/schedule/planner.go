// README: Planner submits and cancels the single deferred activation request.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"
)

// RequestID identifies the one deferred activation this agent keeps in
// flight. Kept from the app the agent replaced.
const RequestID = "com.kanta.PaLog.locationRefresh"

// TaskScheduler is the host boundary accepting deferred activation requests.
// One pending request per identifier; the last submission wins.
type TaskScheduler interface {
	Submit(ctx context.Context, id string, earliestBegin time.Time) error
	Cancel(ctx context.Context, id string) error
}

// ConfigSource yields the current tracking configuration.
type ConfigSource interface {
	Current() Config
}

// Planner owns the (re)scheduling decision: it reads the tracking config and
// either arms the next aligned wake or cancels the pending one. Apply is
// idempotent; calling it while a request is pending replaces that request.
type Planner struct {
	scheduler TaskScheduler
	source    ConfigSource
	now       func() time.Time

	mu       sync.Mutex
	nextWake time.Time
	armed    bool
}

func NewPlanner(scheduler TaskScheduler, source ConfigSource) *Planner {
	return &Planner{scheduler: scheduler, source: source, now: time.Now}
}

// Apply re-evaluates scheduling against the given config. Submit failures
// (host quota and the like) are logged and not retried here; the next config
// change or completed activation retries naturally.
func (p *Planner) Apply(ctx context.Context, cfg Config) {
	if !cfg.TrackingEnabled {
		if err := p.scheduler.Cancel(ctx, RequestID); err != nil {
			log.Printf("schedule: cancel failed: %v", err)
		}
		p.mu.Lock()
		p.armed = false
		p.mu.Unlock()
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("schedule: invalid config: %v", err)
		return
	}

	boundary := NextBoundary(p.now(), cfg.FrequencyMinutes)
	if err := p.scheduler.Submit(ctx, RequestID, boundary); err != nil {
		log.Printf("schedule: submit failed: %v", err)
		return
	}
	p.mu.Lock()
	p.nextWake = boundary
	p.armed = true
	p.mu.Unlock()
	log.Printf("schedule: next wake at %s (every %d min)", boundary.Format(time.RFC3339), cfg.FrequencyMinutes)
}

// Rearm re-applies the current config; called after every completed
// activation so the follow-up wake is always in place before control returns
// to the host.
func (p *Planner) Rearm(ctx context.Context) {
	p.Apply(ctx, p.source.Current())
}

// NextWake reports the most recently submitted wake instant, if one is armed.
func (p *Planner) NextWake() (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nextWake, p.armed
}
