package sampling

import (
	"math"
	"testing"

	"github.com/kanta1129/navireco/internal/types"
)

func TestDistanceMZero(t *testing.T) {
	if d := distanceM(sagaUniv, sagaUniv); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceMKnownPairs(t *testing.T) {
	cases := []struct {
		name      string
		a, b      types.Point
		wantM     float64
		toleranceM float64
	}{
		{
			name:       "saga university to saga station",
			a:          sagaUniv,
			b:          sagaStation,
			wantM:      2790,
			toleranceM: 100,
		},
		{
			name:       "tokyo to osaka",
			a:          types.Point{Lat: 35.6762, Lng: 139.6503},
			b:          types.Point{Lat: 34.6937, Lng: 135.5023},
			wantM:      396000,
			toleranceM: 5000,
		},
	}
	for _, tc := range cases {
		got := distanceM(tc.a, tc.b)
		if math.Abs(got-tc.wantM) > tc.toleranceM {
			t.Errorf("%s: distance = %.0fm, want %.0fm ±%.0fm", tc.name, got, tc.wantM, tc.toleranceM)
		}
	}
}

func TestDistanceMSymmetric(t *testing.T) {
	d1 := distanceM(sagaUniv, sagaStation)
	d2 := distanceM(sagaStation, sagaUniv)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}
