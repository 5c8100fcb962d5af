// README: Timeline read handler; recent records, newest first.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/http/middleware"
	"github.com/kanta1129/navireco/internal/modules/record"
)

const defaultRecordLimit = 50

type RecordsHandler struct {
	records record.Store
}

func NewRecordsHandler(records record.Store) *RecordsHandler {
	return &RecordsHandler{records: records}
}

type recordResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
	PlaceName  string    `json:"place_name"`
	Category   string    `json:"category"`
	AccuracyM  float64   `json:"accuracy_m"`
}

func (h *RecordsHandler) ListRecent(c *gin.Context) {
	limit := defaultRecordLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(c, http.StatusBadRequest, "limit must be 1-500")
			return
		}
		limit = n
	}

	uid := middleware.CallerUID(c)
	recs, err := h.records.QueryRecent(c.Request.Context(), uid, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]recordResponse, len(recs))
	for i, rec := range recs {
		out[i] = recordResponse{
			Latitude:   rec.Latitude,
			Longitude:  rec.Longitude,
			RecordedAt: rec.RecordedAt,
			PlaceName:  rec.PlaceName,
			Category:   rec.Category,
			AccuracyM:  rec.AccuracyM,
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"records": out})
}
