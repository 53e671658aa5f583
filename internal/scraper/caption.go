package scraper

import (
	"fmt"
	"regexp"
	"strings"
)

// Sentinels for caption fields that could not be derived. Extraction is
// best-effort; absence never blocks record creation.
const (
	UnknownCourt    = "未知法院"
	UnknownYear     = "未知年度"
	UnknownCaseType = "未知案件類型"
)

// courtRule is one ordered pattern for recognizing a court name inside a
// case caption. Rules are evaluated in sequence, first match wins.
type courtRule struct {
	name    string
	pattern *regexp.Regexp
}

var courtRules = []courtRule{
	{"district-court", regexp.MustCompile(`(.*?地方法院)`)},
	{"high-court", regexp.MustCompile(`(.*?高等法院)`)},
	{"generic-court", regexp.MustCompile(`(.*?法院)`)},
	{"supreme-court", regexp.MustCompile(`(最高法院)`)},
	{"judicial-yuan", regexp.MustCompile(`(司法院)`)},
}

// courtAlias maps a court abbreviation to its full name. The table is
// consulted in order when no suffix rule matched; the first abbreviation
// contained in the caption wins.
type courtAlias struct {
	abbr string
	full string
}

var courtAliases = []courtAlias{
	{"北院", "臺北地方法院"},
	{"新院", "新北地方法院"},
	{"桃院", "桃園地方法院"},
	{"中院", "臺中地方法院"},
	{"南院", "臺南地方法院"},
	{"高院", "高等法院"},
	{"最高院", "最高法院"},
}

var (
	yearPattern     = regexp.MustCompile(`(\d{2,3})年`)
	caseTypePattern = regexp.MustCompile(`年度?([\p{Han}A-Za-z0-9]+)字`)
)

// ExtractCourt derives the court name from a case caption, e.g.
// "臺北地方法院112年度執字第12345號" yields "臺北地方法院".
func ExtractCourt(caption string) string {
	for _, rule := range courtRules {
		if m := rule.pattern.FindStringSubmatch(caption); m != nil {
			return m[1]
		}
	}
	for _, alias := range courtAliases {
		if strings.Contains(caption, alias.abbr) {
			return alias.full
		}
	}
	return UnknownCourt
}

// ExtractYear derives the Republic-era adjudication year from a caption.
func ExtractYear(caption string) string {
	m := yearPattern.FindStringSubmatch(caption)
	if m == nil {
		return UnknownYear
	}
	return fmt.Sprintf("民國%s年", m[1])
}

// ExtractCaseType derives the case-type token between the year and the
// "字" category marker, e.g. "112年度執字第12345號" yields "執".
func ExtractCaseType(caption string) string {
	m := caseTypePattern.FindStringSubmatch(caption)
	if m == nil {
		return UnknownCaseType
	}
	return m[1]
}
