package scraper

import (
	"fmt"
	"regexp"
	"strconv"
)

// rocDatePattern matches Republic-era dates like "112.04.30".
var rocDatePattern = regexp.MustCompile(`(\d{2,3})\.(\d{1,2})\.(\d{1,2})`)

// NormalizeROCDate converts a Republic-era date string to ISO form, e.g.
// "112.04.30" becomes "2023-04-30". Strings that do not look like a
// Republic-era date pass through unchanged.
func NormalizeROCDate(dateText string) string {
	m := rocDatePattern.FindStringSubmatch(dateText)
	if m == nil {
		return dateText
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%d-%02d-%02d", year+1911, month, day)
}
