// README: Wall-clock alignment for background sampling wakes.
package schedule

import (
	"errors"
	"time"
)

// Config is the externally owned tracking configuration, re-read on every
// scheduling decision.
type Config struct {
	TrackingEnabled  bool
	FrequencyMinutes int // 30 or 60
}

var ErrBadFrequency = errors.New("frequency must be 30 or 60 minutes")

func (c Config) Validate() error {
	if c.FrequencyMinutes != 30 && c.FrequencyMinutes != 60 {
		return ErrBadFrequency
	}
	return nil
}

// NextBoundary returns the next wall-clock alignment mark strictly after now:
// the next top-of-hour for a 60-minute frequency, or the earlier of the next
// top-of-hour and the next half-hour mark for 30. A now landing exactly on a
// mark yields the following one, so back-to-back rescheduling cannot fire the
// same slot twice.
func NextBoundary(now time.Time, frequencyMinutes int) time.Time {
	y, mo, d := now.Date()
	hourStart := time.Date(y, mo, d, now.Hour(), 0, 0, 0, now.Location())
	if frequencyMinutes == 30 {
		if half := hourStart.Add(30 * time.Minute); half.After(now) {
			return half
		}
	}
	return hourStart.Add(time.Hour)
}
