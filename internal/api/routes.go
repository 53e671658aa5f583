package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/weichenlin/judgment-fetcher/internal/cache"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/export"
	"github.com/weichenlin/judgment-fetcher/internal/scraper"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, cache cache.Cache, scraper *scraper.Scraper, exporter *export.Exporter, logger *logger.Logger, cfg *config.Config) {
	h := NewHandlers(db, cache, scraper, exporter, logger, cfg)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		api.POST("/scrape", h.ScrapeRun)
		api.GET("/records", h.ListRecords)
		api.GET("/runs", h.ListRuns)

		api.GET("/cache/stats", h.CacheStats)
	}
}
