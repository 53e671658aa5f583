package scraper

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/go-rod/rod"
	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// collectRecords walks the paginated result list, opening each detail
// record in its own tab and accumulating records until the cap is hit or
// the portal runs out of pages. Every iteration either advances the record
// count toward the cap or ends the run, so the loop always terminates.
func (s *Scraper) collectRecords(ctx context.Context, page *rod.Page, q record.Query) []record.Record {
	records := make([]record.Record, 0, q.MaxRecords)
	visited := make(map[string]struct{})
	pageCount := 1

	for len(records) < q.MaxRecords {
		s.logger.Info("Processing result page", "page", pageCount)

		table, err := s.waitResultTable(ctx, page)
		if err != nil {
			// Treated as end of data, not as a failure.
			s.logger.Warn("Result table not found on current page, ending run", "page", pageCount)
			break
		}

		refs := s.parseRows(table)
		s.logger.Info("Parsed result rows", "page", pageCount, "rows", len(refs))

		for _, ref := range refs {
			if len(records) >= q.MaxRecords {
				s.logger.Info("Record cap reached", "max_records", q.MaxRecords)
				break
			}
			if _, seen := visited[ref.DetailURL]; seen {
				s.logger.Warn("Skipping already visited detail page", "url", ref.DetailURL)
				continue
			}
			visited[ref.DetailURL] = struct{}{}

			rec := s.fetchDetail(ctx, ref, len(records)+1, q)
			records = append(records, rec)
		}

		if len(records) >= q.MaxRecords {
			break
		}
		if !s.advancePage(ctx, page) {
			break
		}
		pageCount++
	}

	return records
}

// waitResultTable waits for the result table with a per-page bounded wait.
func (s *Scraper) waitResultTable(ctx context.Context, page *rod.Page) (*rod.Element, error) {
	tableCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTableWait)
	defer cancel()
	return page.Context(tableCtx).Element(".jub-table")
}

// parseRows parses every data row of the result table, skipping the header
// row. Rows that fail to parse are dropped and do not count against the
// record cap.
func (s *Scraper) parseRows(table *rod.Element) []record.ResultRowRef {
	rows, err := table.Elements("tr")
	if err != nil {
		s.logger.Warn("Failed to enumerate table rows", "error", err)
		return nil
	}

	var refs []record.ResultRowRef
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		ref := s.parseRow(row)
		if ref == nil {
			s.logger.Debug("Skipping unparsable result row", "row", i)
			continue
		}
		refs = append(refs, *ref)
	}
	return refs
}

// fetchDetail opens one judgment's detail page in a new tab, extracts its
// text and builds a Record from it. Any failure yields a degraded record
// so the processed count still advances; the tab is always closed and
// focus always returns to the main tab.
func (s *Scraper) fetchDetail(ctx context.Context, ref record.ResultRowRef, sequence int, q record.Query) record.Record {
	s.logger.Info("Processing record", "sequence", sequence, "caption", ref.Caption)
	rec := s.baseRecord(ref, sequence, q)

	detail, err := s.openDetailTab(ref.DetailURL)
	if err != nil {
		s.logger.Error("Failed to open detail tab", "url", ref.DetailURL, "error", err)
		return degrade(rec)
	}
	defer func() {
		if closeErr := detail.Close(); closeErr != nil {
			s.logger.Warn("Failed to close detail tab", "error", closeErr)
		}
		if s.mainPage != nil {
			if _, actErr := s.mainPage.Activate(); actErr != nil {
				s.logger.Warn("Failed to re-activate main tab", "error", actErr)
			}
		}
		time.Sleep(s.cfg.TabCloseDelay)
	}()

	time.Sleep(s.cfg.DetailSettleDelay)

	var text string
	if err := rod.Try(func() { text = s.extractContent(ctx, detail) }); err != nil {
		s.logger.Error("Failed to read judgment content", "url", ref.DetailURL, "error", err)
		return degrade(rec)
	}

	matches := ExtractParties(text)
	rec.TargetRole = DetermineTargetRole(matches, q.TargetName)
	rec.AllPartyNames = JoinPartyNames(matches)
	rec.RoleAssignments = JoinRoleAssignments(matches)
	if rec.CaseReason == "" {
		rec.CaseReason = extractCaseReason(text)
	}
	rec.ContentLength = utf8.RuneCountInString(text)

	s.logger.Info("Record processed", "sequence", sequence, "content_length", rec.ContentLength)
	return rec
}

// openDetailTab opens the detail URL in a new browser tab.
func (s *Scraper) openDetailTab(url string) (*rod.Page, error) {
	return s.Browser.Page(newTabTarget(url))
}

// baseRecord builds a record from what the result row alone provides:
// caption-derived fields, the normalized date and the case reason. The
// content-derived fields are filled in afterwards, or left degraded.
func (s *Scraper) baseRecord(ref record.ResultRowRef, sequence int, q record.Query) record.Record {
	return record.Record{
		SequenceNumber:   sequence,
		Keyword:          q.Keyword,
		TargetName:       q.TargetName,
		Caption:          ref.Caption,
		CourtName:        ExtractCourt(ref.Caption),
		AdjudicationYear: ExtractYear(ref.Caption),
		CaseType:         ExtractCaseType(ref.Caption),
		AdjudicationDate: NormalizeROCDate(ref.DateText),
		CaseReason:       ref.CaseReason,
		DetailURL:        ref.DetailURL,
		RetrievedAt:      time.Now().Format("2006-01-02 15:04:05"),
	}
}

// degrade marks a record whose detail page could not be processed. Fields
// already known from the result row are preserved.
func degrade(rec record.Record) record.Record {
	rec.TargetRole = ExtractFailed
	rec.AllPartyNames = ""
	rec.RoleAssignments = ""
	rec.ContentLength = 0
	if rec.CaseReason == "" {
		rec.CaseReason = ExtractFailed
	}
	return rec
}

// advancePage clicks the next-page control when it is present within the
// bounded wait. Returns false when pagination is exhausted.
func (s *Scraper) advancePage(ctx context.Context, page *rod.Page) bool {
	nextCtx, cancel := context.WithTimeout(ctx, s.cfg.NextPageWait)
	defer cancel()

	next, err := page.Context(nextCtx).Element("#hlNext")
	if err != nil {
		s.logger.Info("No next-page control, pagination finished")
		return false
	}
	if err := rod.Try(func() { next.MustClick() }); err != nil {
		s.logger.Warn("Next-page control not clickable, pagination finished", "error", err)
		return false
	}

	s.logger.Info("Advancing to next page")
	time.Sleep(s.cfg.PageAdvanceDelay)
	return true
}
