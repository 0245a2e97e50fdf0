package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/songsheet/src/features/catalog"
	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/features/hosting"
	"github.com/contre95/songsheet/src/features/logging"
	"github.com/contre95/songsheet/src/features/player"
	"github.com/contre95/songsheet/src/features/statistics"
	"github.com/contre95/songsheet/src/infra/database"
	"github.com/contre95/songsheet/src/infra/sheets"
	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/infra/watcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const configPath = "config.yaml"

func main() {
	// Load configuration
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	if err := cfgManager.EnsureDirectories(); err != nil {
		log.Fatalf("failed to create directories: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewCollectors(registry)

	// Collections store
	store, err := database.NewSqliteBlobStore(cfgManager.Get().Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()
	if keys, err := store.Keys(ctx); err == nil {
		slog.Info("Collections store opened", "path", cfgManager.Get().Database.Path, "blobs", len(keys))
	}

	// Catalog
	sheetClient := sheets.NewClient(cfgManager.Get().Fetch.Timeout, metrics)
	catalogService := catalog.NewService(sheetClient, cfgManager, metrics)
	if err := catalogService.LoadAll(ctx); err != nil {
		slog.Error("Initial sheet load failed", "error", err)
	}
	catalogService.StartRefresh(ctx)

	// Reload file-backed sheets when they change on disk
	fileEvents := make(chan watcher.FileEvent, 16)
	sheetWatcher, err := watcher.NewWatcher(fileEvents, watcher.DefaultDebounce)
	if err != nil {
		slog.Error("Failed to create sheet watcher", "error", err)
	} else {
		if err := catalogService.WatchLocalSheets(ctx, sheetWatcher); err != nil {
			slog.Error("Failed to watch local sheets", "error", err)
		}
		defer sheetWatcher.Stop()
		go func() {
			for {
				select {
				case event := <-fileEvents:
					if event.EventType == watcher.FileModified {
						catalogService.FileChanged(ctx, event.Path)
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	collectionsService := collections.NewService(store, cfgManager, metrics)
	playerService := player.NewService(collectionsService, metrics)
	statisticsService := statistics.NewService(catalogService)

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfgManager.Get().Telegram.Enabled {
		telegramBot, err = hosting.NewTelegramBot(cfgManager, catalogService, collectionsService, statisticsService)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, configPath, hosting.Services{
		Catalog:     catalogService,
		Collections: collectionsService,
		Player:      playerService,
		Statistics:  statisticsService,
	}, store, metrics, registry)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	<-ctx.Done()
	slog.Info("Shutting down server...")

	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
