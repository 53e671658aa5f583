package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/record"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

// ErrSearchTimeout marks a fatal failure of the search submission phase:
// the query id or the result table never appeared within its bounded wait.
var ErrSearchTimeout = errors.New("search timeout")

// Scraper drives one browser session against the judgment portal.
type Scraper struct {
	cfg     *config.Config
	Browser *rod.Browser // Made public for testing
	logger  *logger.Logger

	// mainPage is the tab holding the paginated result list. Detail tabs
	// are opened and closed within one record's processing; no two detail
	// tabs coexist.
	mainPage *rod.Page
}

// NewScraper launches a browser and returns a scraper bound to it.
func NewScraper(cfg *config.Config, logger *logger.Logger) (*Scraper, error) {
	l := launcher.New().
		Headless(cfg.HeadlessMode).
		Set("user-agent", cfg.UserAgent).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-sandbox").
		Delete("enable-automation")

	if cfg.BrowserPath != "" {
		l = l.Bin(cfg.BrowserPath)
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Scraper{
		cfg:     cfg,
		Browser: browser,
		logger:  logger,
	}, nil
}

// Close tears down the browser session. Safe to call after a failed run.
func (s *Scraper) Close() error {
	return s.Browser.Close()
}

// Run executes one complete scrape: submit the keyword search, walk the
// paginated result list, and accumulate up to q.MaxRecords records.
// Per-record failures degrade into placeholder records; only the search
// submission phase is fatal.
func (s *Scraper) Run(ctx context.Context, q record.Query) ([]record.Record, error) {
	if q.Keyword == "" {
		return nil, fmt.Errorf("keyword must not be empty")
	}

	page, err := s.newPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	s.mainPage = page

	qid, err := s.submitSearch(ctx, page, q.Keyword)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Search submitted", "keyword", q.Keyword, "qid", qid)

	records := s.collectRecords(ctx, page, q)
	s.logger.Info("Scrape finished", "records", len(records))
	return records, nil
}

// newPage opens a fresh tab with the session's viewport and headers.
func (s *Scraper) newPage() (*rod.Page, error) {
	page, err := s.Browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	page.MustSetViewport(1920, 1080, 1, false)
	page.MustSetExtraHeaders("Accept-Language", "zh-TW,zh;q=0.9,en;q=0.8")

	return page, nil
}
