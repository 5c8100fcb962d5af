// README: Interactive wide-radius place search for the map screen.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/maps"
	"github.com/kanta1129/navireco/internal/types"
)

type PlacesHandler struct {
	places *maps.PlacesService
}

func NewPlacesHandler(places *maps.PlacesService) *PlacesHandler {
	return &PlacesHandler{places: places}
}

type placeResponse struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	PlaceID   string  `json:"place_id"`
	DistanceM float64 `json:"distance_m"`
}

func (h *PlacesHandler) Search(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	radius := uint(maps.WideSearchRadiusM)
	if v := c.Query("radius_m"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 || n > 50000 {
			writeError(c, http.StatusBadRequest, "radius_m must be 1-50000")
			return
		}
		radius = uint(n)
	}

	results, err := h.places.SearchNearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]placeResponse, len(results))
	for i, p := range results {
		out[i] = placeResponse{Name: p.Name, Category: p.Category, PlaceID: p.PlaceID, DistanceM: p.DistanceM}
	}
	writeJSON(c, http.StatusOK, gin.H{"places": out})
}
