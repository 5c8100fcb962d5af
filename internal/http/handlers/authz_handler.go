// README: Authorization-change notification handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/modules/authz"
)

type AuthzHandler struct {
	gate *authz.Gate
}

func NewAuthzHandler(gate *authz.Gate) *AuthzHandler {
	return &AuthzHandler{gate: gate}
}

type authzRequest struct {
	State string `json:"state" binding:"required"`
}

// Notify records the device-reported permission state change.
func (h *AuthzHandler) Notify(c *gin.Context) {
	var req authzRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid authorization payload")
		return
	}
	switch authz.State(req.State) {
	case authz.StateUndetermined, authz.StateWhileInUse, authz.StateAlways,
		authz.StateDenied, authz.StateRestricted:
	default:
		writeError(c, http.StatusBadRequest, "unknown authorization state")
		return
	}
	h.gate.OnChange(c.Request.Context(), authz.State(req.State))
	writeJSON(c, http.StatusOK, gin.H{"state": string(h.gate.Current())})
}
