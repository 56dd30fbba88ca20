package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"esulat/pkg/config"
	"esulat/pkg/handlers"
	"esulat/pkg/kv"
	"esulat/pkg/logs"
	"esulat/pkg/repository"
	"esulat/pkg/services"
)

func main() {
	// Load configuration (ESULAT_CONFIG points at an optional file)
	cfg, err := config.Load(os.Getenv("ESULAT_CONFIG"))
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger, err := logs.New(cfg.Log.Debug)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dataDir", cfg.Storage.DataDir),
		zap.String("addr", cfg.Server.Addr))

	// Initialize the key-value store
	var store kv.Store
	dataDir := ""
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		store, err = kv.NewBadgerStore(kv.BadgerConfig{
			Path:       cfg.Storage.DataDir,
			SyncWrites: cfg.Storage.SyncWrites,
			Logger:     logger,
		})
		dataDir = cfg.Storage.DataDir
	case config.BackendMemory:
		store = kv.NewMemoryStore()
	default:
		store, err = kv.NewFileStore(cfg.Storage.DataDir, logger)
		dataDir = cfg.Storage.DataDir
	}
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Initialize repository and services
	repo := repository.New(store, logger)
	folderService := services.NewFolders(repo, logger)
	noteService := services.NewNotes(repo, logger)
	lifecycle := services.NewLifecycle(repo, logger)
	reminderService := services.NewReminders(repo, logger)
	settingsService := services.NewSettings(repo, logger)

	apiHandlers := handlers.NewAPIHandlers(
		folderService, noteService, lifecycle, reminderService, settingsService,
		dataDir, logger)

	// Create router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", apiHandlers.HealthHandler)
	r.Mount("/api", apiHandlers.Routes())

	server := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
		if err := store.Close(); err != nil {
			logger.Warn("error closing store", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}
}
