// README: Enrichment pipeline resolving a coordinate to a place name and category.
package enrich

import (
	"context"
	"log"

	"github.com/kanta1129/navireco/internal/maps"
	"github.com/kanta1129/navireco/internal/types"
)

// Sentinel values keep placeName and category non-empty on every fallback
// path; downstream storage and display never see absent values. The strings
// match what the timeline UI renders.
const (
	PlaceNameUnknown  = "不明な場所"
	CategoryNone      = "カテゴリなし"
	CategoryInTransit = "移動中"
)

// Stage records which fallback stage produced the result.
type Stage string

const (
	StageGeocodeOnly   Stage = "geocode_only"
	StagePOIMatch      Stage = "poi_match"
	StageNoPOIFallback Stage = "no_poi_fallback"
)

// Result is the outcome of one enrichment; both name fields are always
// non-empty.
type Result struct {
	PlaceName string
	Category  string
	Stage     Stage
}

// Geocoder resolves a coordinate to an address string.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, p types.Point) (string, error)
}

// POIFinder returns points of interest near a coordinate, closest first.
type POIFinder interface {
	SearchNearby(ctx context.Context, p types.Point, radiusM uint) ([]maps.Place, error)
}

// Service runs the ordered fallback chain: reverse geocode, then a narrow
// nearby-POI search whose nearest hit overrides the geocoded name. Every
// stage failure degrades to the next fallback; Enrich never fails.
type Service struct {
	geocoder Geocoder
	places   POIFinder
	radiusM  uint
}

func NewService(geocoder Geocoder, places POIFinder, radiusM uint) *Service {
	return &Service{geocoder: geocoder, places: places, radiusM: radiusM}
}

func (s *Service) Enrich(ctx context.Context, p types.Point) Result {
	placeName := PlaceNameUnknown
	if name, err := s.geocoder.ReverseGeocode(ctx, p); err != nil {
		log.Printf("enrich: reverse geocode failed: %v", err)
	} else if name != "" {
		placeName = name
	}

	pois, err := s.places.SearchNearby(ctx, p, s.radiusM)
	if err != nil {
		// Keep the geocoded name; a failed POI query never fails the sample.
		log.Printf("enrich: poi search failed: %v", err)
		return Result{PlaceName: placeName, Category: CategoryNone, Stage: StageGeocodeOnly}
	}
	if len(pois) == 0 {
		return Result{PlaceName: placeName, Category: CategoryInTransit, Stage: StageNoPOIFallback}
	}

	nearest := pois[0]
	if nearest.Name != "" {
		placeName = nearest.Name
	}
	category := CategoryNone
	if nearest.Category != "" {
		category = nearest.Category
	}
	return Result{PlaceName: placeName, Category: category, Stage: StagePOIMatch}
}
