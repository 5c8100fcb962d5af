// README: Agent status handler for the start screen.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/modules/authz"
	"github.com/kanta1129/navireco/internal/modules/sampling"
	"github.com/kanta1129/navireco/internal/modules/schedule"
)

type StatusHandler struct {
	controller *sampling.Controller
	planner    *schedule.Planner
	gate       *authz.Gate
}

func NewStatusHandler(controller *sampling.Controller, planner *schedule.Planner, gate *authz.Gate) *StatusHandler {
	return &StatusHandler{controller: controller, planner: planner, gate: gate}
}

type statusResponse struct {
	Phase         string     `json:"phase"`
	Authorization string     `json:"authorization"`
	NextWake      *time.Time `json:"next_wake,omitempty"`
	LastSuccess   *bool      `json:"last_success,omitempty"`
	LastReason    string     `json:"last_reason,omitempty"`
	LastFinished  *time.Time `json:"last_finished_at,omitempty"`
}

func (h *StatusHandler) Get(c *gin.Context) {
	resp := statusResponse{
		Phase:         string(h.controller.Phase()),
		Authorization: string(h.gate.Current()),
	}
	if wake, ok := h.planner.NextWake(); ok {
		resp.NextWake = &wake
	}
	if outcome, ok := h.controller.LastOutcome(); ok {
		resp.LastSuccess = &outcome.Success
		resp.LastReason = string(outcome.Reason)
		resp.LastFinished = &outcome.FinishedAt
	}
	writeJSON(c, http.StatusOK, resp)
}
