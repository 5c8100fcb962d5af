// README: Location fix ingest handler; devices push raw fixes here.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/http/middleware"
	"github.com/kanta1129/navireco/internal/modules/sampling"
)

type LocationHandler struct {
	fixes *sampling.Store
}

func NewLocationHandler(fixes *sampling.Store) *LocationHandler {
	return &LocationHandler{fixes: fixes}
}

type fixRequest struct {
	Latitude   float64   `json:"latitude" binding:"required"`
	Longitude  float64   `json:"longitude" binding:"required"`
	CapturedAt time.Time `json:"captured_at" binding:"required"`
	AccuracyM  float64   `json:"accuracy_m"`
}

// Update stages the caller's newest fix; the background sampler picks it up
// on its next activation.
func (h *LocationHandler) Update(c *gin.Context) {
	var req fixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid fix payload")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		writeError(c, http.StatusBadRequest, "coordinate out of range")
		return
	}

	fix := sampling.Fix{CapturedAt: req.CapturedAt, AccuracyM: req.AccuracyM}
	fix.Point.Lat = req.Latitude
	fix.Point.Lng = req.Longitude

	uid := middleware.CallerUID(c)
	if err := h.fixes.Publish(c.Request.Context(), uid, fix); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
