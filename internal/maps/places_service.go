package maps

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"

	"github.com/kanta1129/navireco/internal/types"
)

// Place represents a simplified point-of-interest result.
type Place struct {
	Name      string
	Category  string
	PlaceID   string
	DistanceM float64
}

// WideSearchRadiusM is the exploratory radius used by interactive map search.
// Background sampling passes its own narrow radius instead.
const WideSearchRadiusM = 3000

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchNearby returns points of interest within radiusM of p, closest first.
// An empty slice with a nil error means no POI exists inside the radius.
func (s *PlacesService) SearchNearby(ctx context.Context, p types.Point, radiusM uint) ([]Place, error) {
	r := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
		Radius:   radiusM,
		Language: "ja",
	}
	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		category := ""
		if len(result.Types) > 0 {
			category = result.Types[0]
		}
		results = append(results, Place{
			Name:     result.Name,
			Category: category,
			PlaceID:  result.PlaceID,
			DistanceM: haversineM(p.Lat, p.Lng,
				result.Geometry.Location.Lat, result.Geometry.Location.Lng),
		})
	}

	sortByDistance(results, func(pl Place) float64 { return pl.DistanceM })
	return results, nil
}

const earthRadiusM = 6371000.0

// haversineM returns the great-circle distance in metres between two points
// specified in decimal degrees.
func haversineM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
