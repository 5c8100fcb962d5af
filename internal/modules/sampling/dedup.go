// README: Dedup filter deciding whether a new fix is worth recording.
package sampling

import (
	"sync"
	"time"
)

// Filter accepts or rejects a fix against the last recorded one. A fix is
// rejected only when BOTH too little time has passed AND too little distance
// was covered; breaching either threshold justifies a record. The last
// recorded fix lives for the process lifetime; after a restart the first fix
// is always accepted.
type Filter struct {
	minInterval time.Duration
	minDistance float64 // metres

	mu   sync.Mutex
	last *Fix
}

func NewFilter(minInterval time.Duration, minDistanceM float64) *Filter {
	return &Filter{minInterval: minInterval, minDistance: minDistanceM}
}

// Accept reports whether fix should be recorded and, if so, replaces the last
// recorded fix before returning so a concurrent trigger cannot double-accept
// the same sample. A fix captured before the current last one is never
// accepted; the last recorded fix only moves forward in time.
func (f *Filter) Accept(fix Fix) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.last != nil {
		if fix.CapturedAt.Before(f.last.CapturedAt) {
			return false
		}
		elapsed := fix.CapturedAt.Sub(f.last.CapturedAt)
		dist := distanceM(fix.Point, f.last.Point)
		if elapsed < f.minInterval && dist < f.minDistance {
			return false
		}
	}

	accepted := fix
	f.last = &accepted
	return true
}

// Last returns a copy of the last recorded fix, if any.
func (f *Filter) Last() (Fix, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return Fix{}, false
	}
	return *f.last, true
}
