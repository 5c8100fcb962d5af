// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/http/handlers"
	"github.com/kanta1129/navireco/internal/http/middleware"
	"github.com/kanta1129/navireco/internal/infra"
	"github.com/kanta1129/navireco/internal/maps"
	"github.com/kanta1129/navireco/internal/modules/authz"
	"github.com/kanta1129/navireco/internal/modules/record"
	"github.com/kanta1129/navireco/internal/modules/sampling"
	"github.com/kanta1129/navireco/internal/modules/schedule"
	"github.com/kanta1129/navireco/internal/modules/settings"
	"github.com/kanta1129/navireco/internal/modules/summary"
)

type RouterDeps struct {
	Fixes      *sampling.Store
	Gate       *authz.Gate
	Records    record.Store
	Settings   *settings.Service
	Summary    *summary.Service
	Places     *maps.PlacesService
	Controller *sampling.Controller
	Planner    *schedule.Planner
	Verifier   infra.TokenVerifier
	UserID     string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier, deps.UserID))

	locationHandler := handlers.NewLocationHandler(deps.Fixes)
	api.POST("/location/update", locationHandler.Update)

	authzHandler := handlers.NewAuthzHandler(deps.Gate)
	api.POST("/authorization", authzHandler.Notify)

	recordsHandler := handlers.NewRecordsHandler(deps.Records)
	api.GET("/records", recordsHandler.ListRecent)

	settingsHandler := handlers.NewSettingsHandler(deps.Settings)
	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", settingsHandler.Put)

	statusHandler := handlers.NewStatusHandler(deps.Controller, deps.Planner, deps.Gate)
	api.GET("/status", statusHandler.Get)

	if deps.Places != nil {
		placesHandler := handlers.NewPlacesHandler(deps.Places)
		api.GET("/places/search", placesHandler.Search)
	}

	if deps.Summary != nil {
		summaryHandler := handlers.NewSummaryHandler(deps.Summary)
		api.GET("/summary", summaryHandler.Get)
	}

	return r
}
