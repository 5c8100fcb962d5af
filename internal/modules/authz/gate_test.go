package authz

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingRequester struct {
	calls atomic.Int32
	err   error
}

func (r *countingRequester) RequestUpgrade(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestGateStartsUndetermined(t *testing.T) {
	g := NewGate(nil)
	if g.Current() != StateUndetermined {
		t.Errorf("initial state = %s, want %s", g.Current(), StateUndetermined)
	}
}

func TestEnsureAlwaysByState(t *testing.T) {
	cases := []struct {
		state   State
		wantErr error
	}{
		{StateAlways, nil},
		{StateDenied, ErrPermissionDenied},
		{StateRestricted, ErrPermissionDenied},
		{StateWhileInUse, ErrUpgradePending},
		{StateUndetermined, ErrUpgradePending},
	}
	for _, tc := range cases {
		g := NewGate(&countingRequester{})
		g.mu.Lock()
		g.state = tc.state
		g.mu.Unlock()
		if err := g.EnsureAlways(context.Background()); !errors.Is(err, tc.wantErr) {
			t.Errorf("state %s: EnsureAlways = %v, want %v", tc.state, err, tc.wantErr)
		}
	}
}

func TestPartialGrantRequestsUpgrade(t *testing.T) {
	req := &countingRequester{}
	g := NewGate(req)

	g.OnChange(context.Background(), StateWhileInUse)
	if req.calls.Load() != 1 {
		t.Fatalf("expected upgrade request on while_in_use, got %d calls", req.calls.Load())
	}

	_ = g.EnsureAlways(context.Background())
	if req.calls.Load() != 2 {
		t.Errorf("EnsureAlways on partial grant must re-request, got %d calls", req.calls.Load())
	}
}

func TestFullGrantDoesNotRequestUpgrade(t *testing.T) {
	req := &countingRequester{}
	g := NewGate(req)

	g.OnChange(context.Background(), StateAlways)
	if err := g.EnsureAlways(context.Background()); err != nil {
		t.Fatalf("always: unexpected error %v", err)
	}
	if req.calls.Load() != 0 {
		t.Errorf("full grant must not trigger upgrade requests, got %d", req.calls.Load())
	}
}

func TestDeniedDoesNotRequestUpgrade(t *testing.T) {
	req := &countingRequester{}
	g := NewGate(req)

	g.OnChange(context.Background(), StateDenied)
	_ = g.EnsureAlways(context.Background())
	if req.calls.Load() != 0 {
		t.Errorf("denied state must never re-prompt, got %d requests", req.calls.Load())
	}
}

func TestGateToleratesRequesterFailure(t *testing.T) {
	req := &countingRequester{err: errors.New("push unavailable")}
	g := NewGate(req)

	g.OnChange(context.Background(), StateWhileInUse)
	if err := g.EnsureAlways(context.Background()); !errors.Is(err, ErrUpgradePending) {
		t.Errorf("EnsureAlways = %v, want ErrUpgradePending despite requester failure", err)
	}
}

func TestGateWithoutRequester(t *testing.T) {
	g := NewGate(nil)
	g.OnChange(context.Background(), StateWhileInUse)
	if err := g.EnsureAlways(context.Background()); !errors.Is(err, ErrUpgradePending) {
		t.Errorf("EnsureAlways = %v, want ErrUpgradePending", err)
	}
}
