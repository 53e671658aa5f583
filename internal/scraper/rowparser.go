package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-rod/rod"
	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// clickHandlerPattern matches the inline handler attached to each result
// row's caption link, e.g.
// cookieId('TCDV%2c114%2c...','0','abc177','','','DS','1').
// The first parameter is the judgment id, the third the query id.
var clickHandlerPattern = regexp.MustCompile(
	`cookieId\('([^']+)','([^']+)','([^']+)','([^']*)','([^']*)','([^']*)','([^']*)'\)`)

// DecodeClickHandler extracts the judgment id and query id from a result
// row's onclick handler. ok is false when the handler does not match the
// expected call shape.
func DecodeClickHandler(onclick string) (id, qid string, ok bool) {
	m := clickHandlerPattern.FindStringSubmatch(onclick)
	if m == nil {
		return "", "", false
	}
	return m[1], m[3], true
}

// BuildDetailURL synthesizes the detail-page URL for a judgment. The id
// and qid are kept in their URL-escaped wire form.
func BuildDetailURL(base, id, qid string) string {
	return fmt.Sprintf("%s/data.aspx?ty=JD&id=%s&q=%s", base, id, qid)
}

// parseRow extracts a ResultRowRef from one result-list table row. The
// second cell holds the caption and its link, the third the date, the
// fourth the case reason. Returns nil for rows that cannot be parsed;
// such rows are skipped, never fatal.
func (s *Scraper) parseRow(row *rod.Element) *record.ResultRowRef {
	cells, err := row.Elements("td")
	if err != nil || len(cells) < 4 {
		return nil
	}

	links, err := cells[1].Elements("a")
	if err != nil || len(links) == 0 {
		return nil
	}
	link := links.First()

	onclick, err := link.Attribute("onclick")
	if err != nil || onclick == nil {
		return nil
	}

	id, qid, ok := DecodeClickHandler(*onclick)
	if !ok {
		s.logger.Warn("Unparsable click handler on result row", "onclick", *onclick)
		return nil
	}

	caption, err := link.Text()
	if err != nil {
		return nil
	}
	dateText, err := cells[2].Text()
	if err != nil {
		return nil
	}
	caseReason, err := cells[3].Text()
	if err != nil {
		return nil
	}

	return &record.ResultRowRef{
		DetailURL:  BuildDetailURL(s.cfg.PortalBaseURL, id, qid),
		Caption:    strings.TrimSpace(caption),
		DateText:   strings.TrimSpace(dateText),
		CaseReason: strings.TrimSpace(caseReason),
	}
}
