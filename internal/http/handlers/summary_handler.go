// README: Day-summary handler backing the calendar screen.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/http/middleware"
	"github.com/kanta1129/navireco/internal/modules/summary"
)

type SummaryHandler struct {
	summary *summary.Service
}

func NewSummaryHandler(svc *summary.Service) *SummaryHandler {
	return &SummaryHandler{summary: svc}
}

func (h *SummaryHandler) Get(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	uid := middleware.CallerUID(c)
	text, err := h.summary.SummarizeDay(c.Request.Context(), uid, day)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"date": c.Query("date"), "summary": text})
}
