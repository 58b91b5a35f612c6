package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"addressradar/internal/geocode"
	apphttp "addressradar/internal/http"
	"addressradar/internal/http/router"
	"addressradar/internal/mapview"
	"addressradar/internal/nearby"
	"addressradar/internal/proximity"
	proximitysvc "addressradar/internal/proximity/service"
	"addressradar/platform/config"
	"addressradar/platform/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "backend", cfg.SearchBackend)

	if !strings.EqualFold(cfg.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	geocodeModule := geocode.NewModule(cfg, log)
	defer func() {
		_ = geocodeModule.Close()
	}()

	// Probe the configured credential once so a bad key fails loudly at
	// startup instead of on the first user action.
	if geocodeModule.HasGoogleKey() {
		probeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := geocodeModule.Ping(probeCtx); err != nil {
			log.Warn("google maps api key probe failed", "error", err)
		}
		cancel()
	}

	nearbyModule := nearby.NewModule(cfg, log)

	tiles, err := mapview.LoadCatalog(cfg.GetTileConfigPath())
	if err != nil {
		log.Error("failed to load tile catalog", "error", err)
		panic("failed to load tile catalog: " + err.Error())
	}
	builder := mapview.NewBuilder(tiles, log)

	svc := proximitysvc.New(geocodeModule, nearbyModule, builder, cfg, log)
	proximityModule := proximity.NewModule(svc)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			proximityModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
