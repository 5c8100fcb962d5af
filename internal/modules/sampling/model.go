// README: Location fix and sample request value objects.
package sampling

import (
	"time"

	"github.com/kanta1129/navireco/internal/types"
)

// Accuracy is the accuracy class hinted to the fix provider.
type Accuracy string

const (
	AccuracyHundredMeters Accuracy = "hundred_meters"
	AccuracyBest          Accuracy = "best"
)

// Fix is a single resolved coordinate with capture time and accuracy radius.
// Immutable once produced by the provider.
type Fix struct {
	Point      types.Point
	CapturedAt time.Time
	AccuracyM  float64
}

// Request describes one sample attempt: the accuracy class to ask for and the
// hard deadline of the activation window it runs in. Created at activation
// start, consumed once, never persisted.
type Request struct {
	Accuracy Accuracy
	Deadline time.Time
}
