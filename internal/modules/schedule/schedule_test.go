package schedule

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 9, 1, hour, min, sec, 0, time.UTC)
}

// TestNextBoundary verifies wall-clock alignment, including the exclusive
// behavior when now already sits exactly on a mark.
func TestNextBoundary(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		freq int
		want time.Time
	}{
		{"30min mid-slot", at(10, 5, 0), 30, at(10, 30, 0)},
		{"30min past half", at(10, 35, 0), 30, at(11, 0, 0)},
		{"30min exactly on hour", at(10, 0, 0), 30, at(10, 30, 0)},
		{"30min exactly on half", at(10, 30, 0), 30, at(11, 0, 0)},
		{"60min mid-slot", at(10, 35, 0), 60, at(11, 0, 0)},
		{"60min exactly on hour", at(10, 0, 0), 60, at(11, 0, 0)},
		{"60min just before hour", at(10, 59, 59), 60, at(11, 0, 0)},
		{"30min one second in", at(10, 0, 1), 30, at(10, 30, 0)},
	}
	for _, tc := range cases {
		got := NextBoundary(tc.now, tc.freq)
		if !got.Equal(tc.want) {
			t.Errorf("%s: NextBoundary(%s, %d) = %s, want %s",
				tc.name, tc.now, tc.freq, got, tc.want)
		}
		if !got.After(tc.now) {
			t.Errorf("%s: boundary %s is not strictly after now %s", tc.name, got, tc.now)
		}
	}
}

func TestNextBoundaryCrossesMidnight(t *testing.T) {
	now := time.Date(2025, 9, 1, 23, 45, 0, 0, time.UTC)
	want := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	if got := NextBoundary(now, 30); !got.Equal(want) {
		t.Errorf("NextBoundary across midnight = %s, want %s", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{FrequencyMinutes: 30}).Validate(); err != nil {
		t.Errorf("30 min: unexpected error %v", err)
	}
	if err := (Config{FrequencyMinutes: 60}).Validate(); err != nil {
		t.Errorf("60 min: unexpected error %v", err)
	}
	if err := (Config{FrequencyMinutes: 15}).Validate(); err != ErrBadFrequency {
		t.Errorf("15 min: got %v, want ErrBadFrequency", err)
	}
}
