// README: Activation controller; owns the single in-flight background activation.
package sampling

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/kanta1129/navireco/internal/modules/authz"
	"github.com/kanta1129/navireco/internal/modules/enrich"
	"github.com/kanta1129/navireco/internal/modules/record"
	"github.com/kanta1129/navireco/internal/types"
)

// Phase is the controller's position in one activation.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseAwaitingFix Phase = "awaiting_fix"
	PhaseResolving   Phase = "resolving"
	PhaseCompleted   Phase = "completed"
	PhaseExpired     Phase = "expired"
)

// Reason explains how an activation ended.
type Reason string

const (
	ReasonRecorded              Reason = "recorded"
	ReasonDuplicate             Reason = "duplicate"
	ReasonPermissionDenied      Reason = "permission_denied"
	ReasonAwaitingAuthorization Reason = "awaiting_authorization"
	ReasonFixUnavailable        Reason = "fix_unavailable"
	ReasonWriteFailed           Reason = "write_failed"
	ReasonExpired               Reason = "expired"
)

// Outcome is the terminal result of one activation.
type Outcome struct {
	Success    bool
	Reason     Reason
	FinishedAt time.Time
}

var ErrActivationInFlight = errors.New("activation already in flight")

// Gate confirms sampling is authorized right before a fix is requested.
type Gate interface {
	EnsureAlways(ctx context.Context) error
}

// FixProvider yields one fix per request; cancelling the context stops an
// outstanding request.
type FixProvider interface {
	RequestFix(ctx context.Context, req Request) (Fix, error)
}

// Enricher turns an accepted coordinate into a place name and category.
type Enricher interface {
	Enrich(ctx context.Context, p types.Point) enrich.Result
}

// Rearmer arms the next activation after this one reaches a terminal state.
type Rearmer interface {
	Rearm(ctx context.Context)
}

// Controller drives one activation through authorization check, fix
// acquisition, dedup, enrichment, and the record append. It enforces a single
// pending activation and guarantees exactly one completion signal per
// activation, whichever of completion and expiration comes first.
type Controller struct {
	gate     Gate
	provider FixProvider
	filter   *Filter
	enricher Enricher
	records  record.Store
	planner  Rearmer
	userID   string
	accuracy Accuracy

	mu       sync.Mutex
	phase    Phase
	inFlight bool
	last     *Outcome
}

type ControllerDeps struct {
	Gate     Gate
	Provider FixProvider
	Filter   *Filter
	Enricher Enricher
	Records  record.Store
	Planner  Rearmer
	UserID   string
}

func NewController(deps ControllerDeps) *Controller {
	return &Controller{
		gate:     deps.Gate,
		provider: deps.Provider,
		filter:   deps.Filter,
		enricher: deps.Enricher,
		records:  deps.Records,
		planner:  deps.Planner,
		userID:   deps.UserID,
		accuracy: AccuracyHundredMeters,
		phase:    PhaseIdle,
	}
}

// RunActivation executes one background sample under the given hard deadline
// and delivers exactly one completion signal through complete. A second
// activation started while one is in flight is refused. The expiration
// deadline preempts whichever stage is running: the outstanding request is
// cancelled, the failure signal is delivered, and any later-arriving result
// is dropped.
func (c *Controller) RunActivation(ctx context.Context, deadline time.Time, complete func(success bool)) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrActivationInFlight
	}
	c.inFlight = true
	c.phase = PhaseIdle
	c.mu.Unlock()

	actx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	go func() {
		<-actx.Done()
		c.finish(ctx, PhaseExpired, Outcome{Reason: ReasonExpired}, complete)
	}()

	if err := c.gate.EnsureAlways(actx); err != nil {
		reason := ReasonAwaitingAuthorization
		if errors.Is(err, authz.ErrPermissionDenied) {
			reason = ReasonPermissionDenied
		}
		c.finish(ctx, PhaseCompleted, Outcome{Reason: reason}, complete)
		return nil
	}

	if !c.advance(PhaseAwaitingFix) {
		return nil
	}
	fix, err := c.provider.RequestFix(actx, Request{Accuracy: c.accuracy, Deadline: deadline})
	if err != nil {
		if actx.Err() != nil {
			// The expiration watcher already delivered the signal.
			return nil
		}
		log.Printf("sampling: fix request failed: %v", err)
		c.finish(ctx, PhaseCompleted, Outcome{Reason: ReasonFixUnavailable}, complete)
		return nil
	}

	if !c.advance(PhaseResolving) {
		return nil
	}
	if !c.filter.Accept(fix) {
		// Nothing was owed for a duplicate; the activation still succeeded.
		c.finish(ctx, PhaseCompleted, Outcome{Success: true, Reason: ReasonDuplicate}, complete)
		return nil
	}

	result := c.enricher.Enrich(actx, fix.Point)
	if actx.Err() != nil {
		return nil
	}

	rec := record.Record{
		Latitude:   fix.Point.Lat,
		Longitude:  fix.Point.Lng,
		RecordedAt: fix.CapturedAt,
		PlaceName:  result.PlaceName,
		Category:   result.Category,
		AccuracyM:  fix.AccuracyM,
	}
	if err := c.records.Append(actx, c.userID, rec); err != nil {
		if actx.Err() != nil {
			return nil
		}
		log.Printf("sampling: record append failed: %v", err)
		c.finish(ctx, PhaseCompleted, Outcome{Reason: ReasonWriteFailed}, complete)
		return nil
	}

	log.Printf("sampling: recorded %q (%s) at %.4f,%.4f", result.PlaceName, result.Category, fix.Point.Lat, fix.Point.Lng)
	c.finish(ctx, PhaseCompleted, Outcome{Success: true, Reason: ReasonRecorded}, complete)
	return nil
}

// advance moves to the next phase unless the activation already reached a
// terminal state, in which case the caller must drop its in-flight work.
func (c *Controller) advance(p Phase) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inFlight {
		return false
	}
	c.phase = p
	return true
}

// finish records the terminal state and delivers the completion signal.
// Whichever of completion and expiration calls first wins; later calls are
// no-ops. The next activation is armed before control returns to the host.
func (c *Controller) finish(ctx context.Context, phase Phase, o Outcome, complete func(success bool)) {
	c.mu.Lock()
	if !c.inFlight {
		c.mu.Unlock()
		return
	}
	c.inFlight = false
	c.phase = phase
	o.FinishedAt = time.Now()
	c.last = &o
	c.mu.Unlock()

	log.Printf("sampling: activation finished: success=%v reason=%s", o.Success, o.Reason)
	complete(o.Success)
	if c.planner != nil {
		c.planner.Rearm(ctx)
	}
}

// Phase reports the controller's current phase, for the status surface.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastOutcome reports the most recent terminal outcome, if any.
func (c *Controller) LastOutcome() (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}
