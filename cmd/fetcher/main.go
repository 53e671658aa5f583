package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/database"
	"github.com/weichenlin/judgment-fetcher/internal/export"
	"github.com/weichenlin/judgment-fetcher/internal/record"
	"github.com/weichenlin/judgment-fetcher/internal/scraper"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: fetcher <target_name> <keyword> <max_records>")
	fmt.Fprintln(os.Stderr, `Example: fetcher "許家瑋" "許家瑋 本票裁定" 100`)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(2)
	}

	maxRecords, err := strconv.Atoi(args[2])
	if err != nil || maxRecords < 0 {
		fmt.Fprintf(os.Stderr, "invalid max_records %q: must be a non-negative integer\n", args[2])
		usage()
		os.Exit(2)
	}

	q := record.Query{
		TargetName: args[0],
		Keyword:    args[1],
		MaxRecords: maxRecords,
	}

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

	log.Info("Starting judgment fetch",
		"target_name", q.TargetName,
		"keyword", q.Keyword,
		"max_records", q.MaxRecords,
	)

	code := run(cfg, log, q)
	log.Sync()
	os.Exit(code)
}

// run is split from main so the deferred browser teardown always fires
// before the process exits.
func run(cfg *config.Config, log *logger.Logger, q record.Query) int {
	s, err := scraper.NewScraper(cfg, log)
	if err != nil {
		log.Error("Failed to initialize scraper", "error", err)
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error("Failed to close browser session", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ScrapeTimeout)
	defer cancel()

	startedAt := time.Now()
	records, err := s.Run(ctx, q)
	if err != nil {
		log.Error("Scrape run failed", "error", err)
		return 1
	}

	exporter := export.NewExporter(cfg, log)
	exportPath := exporter.Export(records, q)

	if cfg.ArchiveEnabled {
		archive(cfg, log, q, records, exportPath, startedAt)
	}

	log.Info("Run complete", "records", len(records), "export_path", exportPath)
	return 0
}

// archive stores the run and its records in the local sqlite archive.
// Archive failures are logged but never fail the run.
func archive(cfg *config.Config, log *logger.Logger, q record.Query, records []record.Record, exportPath string, startedAt time.Time) {
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Error("Failed to open archive database", "error", err)
		return
	}

	runLog := &database.RunLog{
		Keyword:        q.Keyword,
		TargetName:     q.TargetName,
		MaxRecords:     q.MaxRecords,
		ProcessedCount: len(records),
		Success:        true,
		ExportPath:     exportPath,
		StartedAt:      startedAt,
		FinishedAt:     time.Now(),
	}
	if err := db.Create(runLog).Error; err != nil {
		log.Error("Failed to archive run", "error", err)
		return
	}

	for _, rec := range records {
		archived := database.FromRecord(runLog.ID, rec)
		if err := db.Create(&archived).Error; err != nil {
			log.Error("Failed to archive record", "sequence", rec.SequenceNumber, "error", err)
		}
	}

	log.Info("Run archived", "run_id", runLog.ID, "records", len(records))
}
