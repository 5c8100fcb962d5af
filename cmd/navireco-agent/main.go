// README: Entry point; loads config, wires services, starts HTTP server and the activation host.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kanta1129/navireco/internal/ai"
	"github.com/kanta1129/navireco/internal/config"
	"github.com/kanta1129/navireco/internal/host"
	httptransport "github.com/kanta1129/navireco/internal/http"
	"github.com/kanta1129/navireco/internal/infra"
	"github.com/kanta1129/navireco/internal/maps"
	"github.com/kanta1129/navireco/internal/modules/authz"
	"github.com/kanta1129/navireco/internal/modules/enrich"
	"github.com/kanta1129/navireco/internal/modules/record"
	"github.com/kanta1129/navireco/internal/modules/sampling"
	"github.com/kanta1129/navireco/internal/modules/schedule"
	"github.com/kanta1129/navireco/internal/modules/settings"
	"github.com/kanta1129/navireco/internal/modules/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.User.ID == "" {
		log.Fatal("NAVIRECO_USER_ID is required")
	}
	if cfg.Maps.APIKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var fb *infra.Firebase
	if cfg.Firebase.ProjectID != "" {
		fb, err = infra.NewFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	}

	var records record.Store
	switch cfg.Records.Backend {
	case "postgres":
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		pg := record.NewPostgresStore(dbPool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal(err)
		}
		records = pg
	case "firestore":
		if fb == nil {
			log.Fatal("record backend firestore requires NAVIRECO_FIREBASE_PROJECT_ID")
		}
		records = record.NewFirestoreStore(fb.Firestore())
	default:
		log.Fatalf("unknown record backend %q", cfg.Records.Backend)
	}

	geocodeSvc, err := maps.NewGeocodeService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}
	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}
	enricher := enrich.NewService(geocodeSvc, placesSvc, uint(cfg.Sampling.POIRadiusMeters))

	var requester authz.Requester
	if fb != nil && cfg.User.DeviceToken != "" {
		requester = authz.NewPushRequester(fb.Messaging(), cfg.User.DeviceToken)
	}
	gate := authz.NewGate(requester)

	settingsSvc := settings.NewService(redisClient, cfg.User.ID)
	if err := settingsSvc.Load(ctx); err != nil {
		log.Printf("settings load: %v", err)
	}

	fixStore := sampling.NewStore(redisClient)
	provider := sampling.NewProvider(fixStore, cfg.User.ID,
		time.Duration(cfg.Sampling.FixMaxAgeSeconds)*time.Second)
	filter := sampling.NewFilter(
		time.Duration(cfg.Sampling.MinIntervalSeconds)*time.Second,
		cfg.Sampling.MinDistanceMeters)

	// The controller rearms through the planner, the planner submits to the
	// host, and the host fires the controller; the runner adapter breaks the
	// construction cycle.
	var controller *sampling.Controller
	activationHost := host.New(host.RunnerFunc(
		func(ctx context.Context, deadline time.Time, complete func(bool)) error {
			return controller.RunActivation(ctx, deadline, complete)
		}), time.Duration(cfg.Sampling.WindowSeconds)*time.Second)
	planner := schedule.NewPlanner(activationHost, settingsSvc)
	controller = sampling.NewController(sampling.ControllerDeps{
		Gate:     gate,
		Provider: provider,
		Filter:   filter,
		Enricher: enricher,
		Records:  records,
		Planner:  planner,
		UserID:   cfg.User.ID,
	})

	settingsSvc.OnChange(func(c schedule.Config) {
		planner.Apply(ctx, c)
	})
	planner.Apply(ctx, settingsSvc.Current())

	var summarySvc *summary.Service
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiSummarizer(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		summarySvc = summary.NewService(records, gemini)
	}

	var verifier infra.TokenVerifier
	if fb != nil {
		verifier = fb
	}
	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Fixes:      fixStore,
		Gate:       gate,
		Records:    records,
		Settings:   settingsSvc,
		Summary:    summarySvc,
		Places:     placesSvc,
		Controller: controller,
		Planner:    planner,
		Verifier:   verifier,
		UserID:     cfg.User.ID,
	})

	go activationHost.Run(ctx)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
