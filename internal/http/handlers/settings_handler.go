// README: Tracking settings handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/modules/schedule"
	"github.com/kanta1129/navireco/internal/modules/settings"
)

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

type settingsPayload struct {
	TrackingEnabled  bool `json:"tracking_enabled"`
	FrequencyMinutes int  `json:"frequency_minutes"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	cfg := h.settings.Current()
	writeJSON(c, http.StatusOK, settingsPayload{
		TrackingEnabled:  cfg.TrackingEnabled,
		FrequencyMinutes: cfg.FrequencyMinutes,
	})
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req settingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid settings payload")
		return
	}
	cfg := schedule.Config{
		TrackingEnabled:  req.TrackingEnabled,
		FrequencyMinutes: req.FrequencyMinutes,
	}
	if err := h.settings.Update(c.Request.Context(), cfg); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, settingsPayload{
		TrackingEnabled:  cfg.TrackingEnabled,
		FrequencyMinutes: cfg.FrequencyMinutes,
	})
}
