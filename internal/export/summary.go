package export

import (
	"fmt"
	"sort"

	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// SummaryRow is one line of the derived statistics sheet.
type SummaryRow struct {
	Item  string
	Value string
	Note  string
}

// BuildSummary derives the statistics sheet from the exported records:
// totals, the echoed query, the most frequent court, target role and case
// type with their counts, and the span of adjudication years.
func BuildSummary(records []record.Record, q record.Query) []SummaryRow {
	rows := []SummaryRow{
		{Item: "總判決書數量", Value: fmt.Sprintf("%d", len(records)), Note: "本次搜尋共找到的判決書數量"},
		{Item: "搜尋關鍵字", Value: q.Keyword, Note: "使用的搜尋關鍵字"},
		{Item: "目標人物", Value: q.TargetName, Note: "分析的目標人物姓名"},
	}

	courts := make([]string, len(records))
	roles := make([]string, len(records))
	caseTypes := make([]string, len(records))
	years := make([]string, len(records))
	for i, rec := range records {
		courts[i] = rec.CourtName
		roles[i] = rec.TargetRole
		caseTypes[i] = rec.CaseType
		years[i] = rec.AdjudicationYear
	}

	court, courtCount := mostFrequent(courts)
	rows = append(rows, SummaryRow{Item: "最常見法院", Value: court, Note: countNote(courtCount)})

	role, roleCount := mostFrequent(roles)
	rows = append(rows, SummaryRow{Item: "最常見身份", Value: role, Note: countNote(roleCount)})

	caseType, caseTypeCount := mostFrequent(caseTypes)
	rows = append(rows, SummaryRow{Item: "最常見案件類型", Value: caseType, Note: countNote(caseTypeCount)})

	distinct := distinctSorted(years)
	yearNote := ""
	if len(distinct) > 0 {
		yearNote = fmt.Sprintf("從 %s 到 %s", distinct[0], distinct[len(distinct)-1])
	}
	rows = append(rows, SummaryRow{
		Item:  "案件年度分布",
		Value: fmt.Sprintf("%d 個年度", len(distinct)),
		Note:  yearNote,
	})

	return rows
}

// mostFrequent returns the most common value and its count; ties are
// broken by first occurrence. Empty input yields "無".
func mostFrequent(values []string) (string, int) {
	if len(values) == 0 {
		return "無", 0
	}
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, bestCount
}

func countNote(count int) string {
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("出現 %d 次", count)
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{})
	var distinct []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return distinct
}
