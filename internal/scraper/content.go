package scraper

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// minContentLength is the rune count a selector's text must exceed to be
// accepted as the judgment content.
const minContentLength = 100

// contentSelectors is the ordered list of strategies probed for the
// judgment text on a detail page; the first one yielding enough text wins.
// The whole page body is the last resort.
var contentSelectors = []string{
	"#jud_content",
	".jud-content",
	"#content",
	".content",
	".mainContent",
	"#mainContent",
	"[id*='content']",
	"[class*='content']",
	"body",
}

// caseReasonPattern recovers the case reason from judgment text when the
// result row did not carry one.
var caseReasonPattern = regexp.MustCompile(`裁判案由[：:\s]*([^\n\r]+)`)

// UnknownCaseReason marks a judgment whose case reason could not be found.
const UnknownCaseReason = "未知案由"

// extractContent probes the content selectors in order and returns the
// first sufficiently long text, falling back to whatever the page body
// holds when every strategy comes up short.
func (s *Scraper) extractContent(ctx context.Context, page *rod.Page) string {
	for _, selector := range contentSelectors {
		probeCtx, cancel := context.WithTimeout(ctx, s.cfg.SelectorProbeWait)
		elem, err := page.Context(probeCtx).Element(selector)
		cancel()
		if err != nil {
			continue
		}
		text, err := elem.Text()
		if err != nil {
			continue
		}
		if utf8.RuneCountInString(text) > minContentLength {
			s.logger.Info("Judgment content located", "selector", selector, "length", utf8.RuneCountInString(text))
			return text
		}
	}

	s.logger.Warn("No content selector matched, falling back to page text")
	body, err := page.Element("body")
	if err != nil {
		return ""
	}
	text, err := body.Text()
	if err != nil {
		return ""
	}
	return text
}

// extractCaseReason pulls the case reason out of full judgment text.
func extractCaseReason(text string) string {
	if m := caseReasonPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return UnknownCaseReason
}

// newTabTarget describes a fresh tab navigated straight to url.
func newTabTarget(url string) proto.TargetCreateTarget {
	return proto.TargetCreateTarget{URL: url}
}
