package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vbonduro/mediacatalog/internal/config"
	"github.com/vbonduro/mediacatalog/internal/db"
	"github.com/vbonduro/mediacatalog/internal/logging"
	"github.com/vbonduro/mediacatalog/internal/mediastore/local"
	"github.com/vbonduro/mediacatalog/internal/scanner"
	"github.com/vbonduro/mediacatalog/internal/service"
	"github.com/vbonduro/mediacatalog/internal/store"
	"github.com/vbonduro/mediacatalog/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	categoryStore := store.NewCategoryStore(database)
	imageStore := store.NewImageStore(database)
	heroStore := store.NewHeroStore(database)

	media, err := local.NewLocalMediaStore(cfg.MediaRoot)
	if err != nil {
		logger.Error("failed to initialize media store", "error", err)
		return
	}

	services := web.Services{
		Catalog:   service.NewCatalogService(categoryStore, imageStore, logger),
		Scanner:   scanner.New(filepath.Join(cfg.MediaRoot, cfg.GallerySection), cfg.GallerySection, logger),
		Uploads:   service.NewUploadPipeline(media, heroStore, logger),
		Deletions: service.NewDeletionPipeline(media, imageStore, heroStore, logger),
		Hero:      service.NewHeroAggregator(heroStore, logger),
	}
	server := web.NewServer(services, database, web.Options{
		MediaRoot:          cfg.MediaRoot,
		MaxMultipartMemory: cfg.MaxMultipartMemory,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
	}
}
