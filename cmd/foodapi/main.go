package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorestaurant/internal/api"
	"gorestaurant/internal/config"
	"gorestaurant/internal/database"
	"gorestaurant/internal/logger"
	"gorestaurant/internal/monitoring"

	"github.com/gin-gonic/gin"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	port       = flag.Int("port", 0, "API server port (overrides configuration)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("foodapi", cfg.LogLevel)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	store, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.LogLevel == "debug")
	if err != nil {
		log.Error("startup", "", "Failed to open database", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Error("startup", "", "Failed to migrate database", err)
		os.Exit(1)
	}
	if cfg.Database.Seed {
		if err := store.Seed(); err != nil {
			log.Error("startup", "", "Failed to seed database", err)
			os.Exit(1)
		}
	}

	// Initialize API server
	metricsPath := ""
	if cfg.Server.Metrics.Enabled {
		metricsPath = cfg.Server.Metrics.Path
	}
	srv := api.NewServer(store, monitoring.NewCollector(), log, api.WithMetricsPath(metricsPath))

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Router,
	}

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown", "", "Shutting down server")
		srv.Feed().Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "", "Server shutdown error", err)
		}
	}()

	log.Info("startup", "", "Starting food API",
		slog.String("addr", server.Addr),
		slog.String("driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("startup", "", "API server error", err)
		os.Exit(1)
	}
	<-stopped
}
