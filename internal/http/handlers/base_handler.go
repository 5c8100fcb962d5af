// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/modules/schedule"
	"github.com/kanta1129/navireco/internal/modules/summary"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case schedule.ErrBadFrequency:
		writeError(c, http.StatusBadRequest, err.Error())
	case summary.ErrDisabled:
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case summary.ErrNoRecords:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
