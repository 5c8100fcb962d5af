// README: Authorization gate tracking the device's location-permission state.
package authz

import (
	"context"
	"errors"
	"log"
	"sync"
)

// State mirrors the device-reported location authorization status.
type State string

const (
	StateUndetermined State = "undetermined"
	StateWhileInUse   State = "while_in_use"
	StateAlways       State = "always"
	StateDenied       State = "denied"
	StateRestricted   State = "restricted"
)

var (
	// ErrPermissionDenied means the user denied or the platform restricted
	// location access; no automatic re-request is made.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUpgradePending means only a partial grant exists; an upgrade to
	// "always" has been requested but sampling is not yet permitted.
	ErrUpgradePending = errors.New("always authorization not yet granted")
)

// Requester asks the device to prompt the user for "always" authorization.
// The request is best-effort; the user may ignore it indefinitely.
type Requester interface {
	RequestUpgrade(ctx context.Context) error
}

// Gate holds the last reported authorization state. Changes arrive as
// asynchronous notifications from the device, never by polling.
type Gate struct {
	mu        sync.Mutex
	state     State
	requester Requester
}

func NewGate(requester Requester) *Gate {
	return &Gate{state: StateUndetermined, requester: requester}
}

func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// OnChange records a device-reported state change. A change to a partial
// grant triggers a non-blocking upgrade request.
func (g *Gate) OnChange(ctx context.Context, s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
	log.Printf("authz: state changed to %s", s)

	switch s {
	case StateUndetermined, StateWhileInUse:
		g.requestUpgrade(ctx)
	}
}

// EnsureAlways is called immediately before every fix request; authorization
// can change between scheduling and execution. Anything short of "always"
// fails the attempt, and a partial grant re-requests the upgrade on the way
// out.
func (g *Gate) EnsureAlways(ctx context.Context) error {
	switch g.Current() {
	case StateAlways:
		return nil
	case StateDenied, StateRestricted:
		return ErrPermissionDenied
	default:
		g.requestUpgrade(ctx)
		return ErrUpgradePending
	}
}

func (g *Gate) requestUpgrade(ctx context.Context) {
	if g.requester == nil {
		return
	}
	if err := g.requester.RequestUpgrade(ctx); err != nil {
		log.Printf("authz: upgrade request failed: %v", err)
	}
}
