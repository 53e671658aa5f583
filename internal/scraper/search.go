package scraper

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
)

// submitSearch fills the portal's simple query form, waits for the opaque
// query id to appear in page state, then jumps straight to the result-list
// URL, bypassing the intermediate results rendering. Failures here are
// fatal to the run; there is no retry.
func (s *Scraper) submitSearch(ctx context.Context, page *rod.Page, keyword string) (string, error) {
	searchURL := s.cfg.PortalBaseURL + "/default.aspx"
	s.logger.Info("Opening search page", "url", searchURL)

	formCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryIDWait)
	defer cancel()

	if err := page.Context(formCtx).Navigate(searchURL); err != nil {
		return "", fmt.Errorf("failed to open search page: %w", err)
	}

	input, err := page.Context(formCtx).Element("#txtKW")
	if err != nil {
		return "", fmt.Errorf("%w: keyword input not found", ErrSearchTimeout)
	}
	if err := rod.Try(func() {
		input.MustSelectAllText().MustInput(keyword)
		page.MustElement("#btnSimpleQry").MustClick()
	}); err != nil {
		return "", fmt.Errorf("failed to submit search form: %w", err)
	}

	s.logger.Info("Waiting for query id")
	qidCtx, cancelQID := context.WithTimeout(ctx, s.cfg.QueryIDWait)
	defer cancelQID()

	hidden, err := page.Context(qidCtx).Element("#hidQID")
	if err != nil {
		return "", fmt.Errorf("%w: query id not present", ErrSearchTimeout)
	}
	value, err := hidden.Attribute("value")
	if err != nil || value == nil || *value == "" {
		return "", fmt.Errorf("%w: query id empty", ErrSearchTimeout)
	}
	qid := *value

	resultsURL := fmt.Sprintf("%s/qryresultlst.aspx?ty=JUDBOOK&q=%s", s.cfg.PortalBaseURL, qid)
	s.logger.Info("Jumping to result list", "url", resultsURL)
	if err := page.Navigate(resultsURL); err != nil {
		return "", fmt.Errorf("failed to open result list: %w", err)
	}

	tableCtx, cancelTable := context.WithTimeout(ctx, s.cfg.ResultTableWait)
	defer cancelTable()

	if _, err := page.Context(tableCtx).Element(".jub-table"); err != nil {
		return "", fmt.Errorf("%w: result table not present", ErrSearchTimeout)
	}

	return qid, nil
}
