package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/aims"
	"github.com/aims-ops/aims-console/internal/api"
	"github.com/aims-ops/aims-console/internal/config"
	"github.com/aims-ops/aims-console/internal/database"
	"github.com/aims-ops/aims-console/internal/logger"
	"github.com/aims-ops/aims-console/internal/processor"
	"github.com/aims-ops/aims-console/internal/proxy"
	"github.com/aims-ops/aims-console/internal/services"
	"github.com/aims-ops/aims-console/internal/session"
	"github.com/aims-ops/aims-console/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database for the activity event log
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	eventService := services.NewEventService(db, hub)

	// Set up the upstream forwarder
	forwarder := proxy.New(cfg.UpstreamBase(), cfg.UpstreamTimeout)

	// Optionally run the background incident processor in-process. It
	// talks to the backend directly with its own service account.
	var proc *processor.Processor
	if cfg.Processor.Enabled {
		client := aims.New(cfg.UpstreamBase(), session.NewMemoryStore())
		proc = processor.New(client, eventService, cfg.Processor)
		if err := proc.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start processor")
		}
	}

	// Set up router
	router := api.NewRouter(forwarder, hub, eventService, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ListenPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ListenPort).Str("upstream", cfg.UpstreamBase()).Msg("Gateway starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down gateway...")

	if proc != nil {
		proc.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Gateway forced to shutdown")
	}

	log.Info().Msg("Gateway exiting")
}
