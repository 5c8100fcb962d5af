package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/kanta1129/navireco/internal/types"
)

// GeocodeService handles reverse geocoding through the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// ReverseGeocode resolves a coordinate to a human-readable address. An empty
// string with a nil error means the API returned no result for the point.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	r := &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
		Language: "ja",
	}
	results, err := s.client.ReverseGeocode(ctx, r)
	if err != nil {
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}
