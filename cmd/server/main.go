package main

import (
	"fmt"
	"os"

	"github.com/weichenlin/judgment-fetcher/internal/cache"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/database"
	"github.com/weichenlin/judgment-fetcher/internal/server"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)

	srv := server.New(cfg, db, cacheService, log)

	log.Info("Starting judgment fetcher service",
		"host", cfg.Host,
		"port", cfg.Port,
		"portal", cfg.PortalBaseURL,
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start", "error", err)
	}
}
