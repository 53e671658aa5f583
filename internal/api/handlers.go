package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/weichenlin/judgment-fetcher/internal/cache"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/database"
	"github.com/weichenlin/judgment-fetcher/internal/export"
	"github.com/weichenlin/judgment-fetcher/internal/record"
	"github.com/weichenlin/judgment-fetcher/internal/scraper"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	db       *gorm.DB
	cache    cache.Cache
	scraper  *scraper.Scraper
	exporter *export.Exporter
	logger   *logger.Logger
	cfg      *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, cache cache.Cache, scraper *scraper.Scraper, exporter *export.Exporter, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		db:       db,
		cache:    cache,
		scraper:  scraper,
		exporter: exporter,
		logger:   logger,
		cfg:      cfg,
	}
}

// ScrapeRun launches one scrape run for the submitted query, archives its
// records and exports them. Identical queries are answered from cache.
func (h *Handlers) ScrapeRun(c *gin.Context) {
	var req struct {
		TargetName string `json:"target_name" binding:"required"`
		Keyword    string `json:"keyword" binding:"required"`
		MaxRecords int    `json:"max_records" binding:"required,min=1,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	q := record.Query{
		TargetName: req.TargetName,
		Keyword:    req.Keyword,
		MaxRecords: req.MaxRecords,
	}

	cacheKey := cache.GenerateCacheKey(q)
	if cached, found := h.cache.Get(cacheKey); found {
		h.logger.Info("Cache hit", "key", cacheKey)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"data":      cached,
			"fromCache": true,
		})
		return
	}

	runLog := &database.RunLog{
		Keyword:    q.Keyword,
		TargetName: q.TargetName,
		MaxRecords: q.MaxRecords,
		StartedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.ScrapeTimeout)
	defer cancel()

	records, err := h.scraper.Run(ctx, q)
	runLog.FinishedAt = time.Now()
	runLog.ProcessedCount = len(records)

	if err != nil {
		runLog.Success = false
		runLog.ErrorMessage = err.Error()
		h.db.Create(runLog)

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	runLog.Success = true
	runLog.ExportPath = h.exporter.Export(records, q)
	h.db.Create(runLog)

	for _, rec := range records {
		archived := database.FromRecord(runLog.ID, rec)
		if err := h.db.Create(&archived).Error; err != nil {
			h.logger.Error("Failed to archive record", "sequence", rec.SequenceNumber, "error", err)
		}
	}

	h.cache.Set(cacheKey, records)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        records,
		"export_path": runLog.ExportPath,
		"fromCache":   false,
	})
}

// ListRecords returns archived judgment records, newest first.
func (h *Handlers) ListRecords(c *gin.Context) {
	var records []database.JudgmentRecord

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	query := h.db.Model(&database.JudgmentRecord{})
	if court := c.Query("court"); court != "" {
		query = query.Where("court_name = ?", court)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("target_role = ?", role)
	}

	var total int64
	query.Count(&total)

	query.Offset(offset).Limit(limit).
		Order("adjudication_date DESC").
		Find(&records)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// ListRuns returns past scrape runs.
func (h *Handlers) ListRuns(c *gin.Context) {
	var runs []database.RunLog

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	var total int64
	h.db.Model(&database.RunLog{}).Count(&total)

	h.db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&runs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    runs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.RunLog{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	stats := h.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
