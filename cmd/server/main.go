// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seoulbrew/sitescope/internal/api"
	"github.com/seoulbrew/sitescope/internal/cache"
	"github.com/seoulbrew/sitescope/internal/config"
	"github.com/seoulbrew/sitescope/internal/service"
	"github.com/seoulbrew/sitescope/internal/snapshot"
	"github.com/seoulbrew/sitescope/internal/snapshot/postgres"
	"github.com/seoulbrew/sitescope/internal/storage"
	"github.com/seoulbrew/sitescope/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	if cfg.Snapshot.FetchOnStart {
		if err := fetchSnapshotFiles(ctx, cfg); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to fetch snapshot files from storage")
		}
	}

	// Load the snapshot once at startup. All queries are served from it.
	source, cleanup, err := newSnapshotSource(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize snapshot source")
	}
	defer cleanup()

	snap, err := source.Load(ctx)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load snapshot")
	}
	logger.Log.Info().
		Str("snapshot_id", snap.ID()).
		Int("dongs", len(snap.Dongs())).
		Int("brands", len(snap.Brands())).
		Msg("Snapshot loaded")

	queryCache, err := cache.NewQueryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Query cache unavailable, falling back to no-op cache")
		queryCache = cache.NewNoopQueryCache()
	}

	// Initialize services
	dongService := service.NewDongService(snap, queryCache)
	brandService := service.NewBrandService(snap)
	recommendService := service.NewRecommendService(snap, brandService, queryCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		DongService:      dongService,
		BrandService:     brandService,
		RecommendService: recommendService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func newSnapshotSource(cfg *config.Config) (snapshot.Source, func(), error) {
	switch cfg.Snapshot.Source {
	case "postgres":
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSource(db), func() { db.Close() }, nil
	default:
		source := snapshot.NewFileSource(cfg.Snapshot.DataPath, cfg.Snapshot.DetailPath)
		return source, func() {}, nil
	}
}

// fetchSnapshotFiles downloads the published snapshot JSON from object
// storage into the configured local paths before loading.
func fetchSnapshotFiles(ctx context.Context, cfg *config.Config) error {
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	dataKey := filepath.Base(cfg.Snapshot.DataPath)
	if err := client.DownloadObject(ctx, dataKey, cfg.Snapshot.DataPath); err != nil {
		return err
	}

	detailKey := filepath.Base(cfg.Snapshot.DetailPath)
	if err := client.DownloadObject(ctx, detailKey, cfg.Snapshot.DetailPath); err != nil {
		// The detail overlay is optional. Serve base metrics without it.
		logger.Log.Warn().Err(err).Str("key", detailKey).Msg("Detail overlay not fetched")
	}
	return nil
}
