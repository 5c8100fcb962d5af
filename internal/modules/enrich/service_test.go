package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/kanta1129/navireco/internal/maps"
	"github.com/kanta1129/navireco/internal/types"
)

type fakeGeocoder struct {
	name string
	err  error
}

func (g fakeGeocoder) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	return g.name, g.err
}

type fakeFinder struct {
	places []maps.Place
	err    error
}

func (f fakeFinder) SearchNearby(ctx context.Context, p types.Point, radiusM uint) ([]maps.Place, error) {
	return f.places, f.err
}

var testPoint = types.Point{Lat: 33.2411, Lng: 130.2844}

func TestEnrichPOIMatchOverridesGeocodedName(t *testing.T) {
	s := NewService(
		fakeGeocoder{name: "佐賀県佐賀市本庄町1"},
		fakeFinder{places: []maps.Place{
			{Name: "佐賀大学", Category: "university", DistanceM: 40},
			{Name: "本庄公園", Category: "park", DistanceM: 80},
		}},
		100,
	)
	r := s.Enrich(context.Background(), testPoint)
	if r.PlaceName != "佐賀大学" {
		t.Errorf("PlaceName = %q, want nearest POI name", r.PlaceName)
	}
	if r.Category != "university" {
		t.Errorf("Category = %q, want %q", r.Category, "university")
	}
	if r.Stage != StagePOIMatch {
		t.Errorf("Stage = %s, want %s", r.Stage, StagePOIMatch)
	}
}

func TestEnrichNoPOIFallsBackToInTransit(t *testing.T) {
	s := NewService(fakeGeocoder{name: "国道34号"}, fakeFinder{}, 100)
	r := s.Enrich(context.Background(), testPoint)
	if r.PlaceName != "国道34号" {
		t.Errorf("PlaceName = %q, want geocoded address", r.PlaceName)
	}
	if r.Category != CategoryInTransit {
		t.Errorf("Category = %q, want %q", r.Category, CategoryInTransit)
	}
	if r.Stage != StageNoPOIFallback {
		t.Errorf("Stage = %s, want %s", r.Stage, StageNoPOIFallback)
	}
}

func TestEnrichPOIFailureKeepsGeocodedName(t *testing.T) {
	s := NewService(
		fakeGeocoder{name: "佐賀県佐賀市本庄町1"},
		fakeFinder{err: errors.New("OVER_QUERY_LIMIT")},
		100,
	)
	r := s.Enrich(context.Background(), testPoint)
	if r.PlaceName != "佐賀県佐賀市本庄町1" {
		t.Errorf("PlaceName = %q, want geocoded address preserved", r.PlaceName)
	}
	if r.Category != CategoryNone {
		t.Errorf("Category = %q, want %q", r.Category, CategoryNone)
	}
	if r.Stage != StageGeocodeOnly {
		t.Errorf("Stage = %s, want %s", r.Stage, StageGeocodeOnly)
	}
}

func TestEnrichGeocodeFailureUsesSentinel(t *testing.T) {
	s := NewService(fakeGeocoder{err: errors.New("timeout")}, fakeFinder{}, 100)
	r := s.Enrich(context.Background(), testPoint)
	if r.PlaceName != PlaceNameUnknown {
		t.Errorf("PlaceName = %q, want %q", r.PlaceName, PlaceNameUnknown)
	}
	if r.Category != CategoryInTransit {
		t.Errorf("Category = %q, want %q", r.Category, CategoryInTransit)
	}
}

func TestEnrichEmptyGeocodeResultUsesSentinel(t *testing.T) {
	s := NewService(fakeGeocoder{name: ""}, fakeFinder{}, 100)
	r := s.Enrich(context.Background(), testPoint)
	if r.PlaceName != PlaceNameUnknown {
		t.Errorf("PlaceName = %q, want %q", r.PlaceName, PlaceNameUnknown)
	}
}

// Every fallback combination must still yield non-empty fields; storage and
// the timeline rely on it.
func TestEnrichNeverReturnsEmptyFields(t *testing.T) {
	geocoders := []fakeGeocoder{
		{name: "somewhere"},
		{name: ""},
		{err: errors.New("down")},
	}
	finders := []fakeFinder{
		{places: []maps.Place{{Name: "poi", Category: "cafe"}}},
		{places: []maps.Place{{Name: "", Category: ""}}},
		{},
		{err: errors.New("down")},
	}
	for _, g := range geocoders {
		for _, f := range finders {
			r := NewService(g, f, 100).Enrich(context.Background(), testPoint)
			if r.PlaceName == "" || r.Category == "" {
				t.Errorf("geocoder=%+v finder=%+v produced empty field: %+v", g, f, r)
			}
		}
	}
}
