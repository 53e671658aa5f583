package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/record"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

func testRecords() []record.Record {
	return []record.Record{
		{
			SequenceNumber:   1,
			Keyword:          "王小明 本票裁定",
			TargetName:       "王小明",
			Caption:          "臺北地方法院112年度執字第12345號",
			CourtName:        "臺北地方法院",
			AdjudicationYear: "民國112年",
			CaseType:         "執",
			AdjudicationDate: "2023-04-30",
			CaseReason:       "本票裁定",
			TargetRole:       "債務人",
			AllPartyNames:    "王小明, 李大華",
			RoleAssignments:  "債務人:王小明; 債權人:李大華",
			DetailURL:        "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=a&q=q1",
			ContentLength:    1200,
			RetrievedAt:      time.Now().Format("2006-01-02 15:04:05"),
		},
		{
			SequenceNumber:   2,
			Keyword:          "王小明 本票裁定",
			TargetName:       "王小明",
			Caption:          "臺中地方法院113年度司票字第700號",
			CourtName:        "臺中地方法院",
			AdjudicationYear: "民國113年",
			CaseType:         "司票",
			AdjudicationDate: "2024-06-01",
			CaseReason:       "本票裁定",
			TargetRole:       "債務人",
			AllPartyNames:    "王小明",
			RoleAssignments:  "債務人:王小明",
			DetailURL:        "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=b&q=q1",
			ContentLength:    800,
			RetrievedAt:      time.Now().Format("2006-01-02 15:04:05"),
		},
		{
			SequenceNumber:   3,
			Keyword:          "王小明 本票裁定",
			TargetName:       "王小明",
			Caption:          "臺北地方法院111年度訴字第9號",
			CourtName:        "臺北地方法院",
			AdjudicationYear: "民國111年",
			CaseType:         "訴",
			AdjudicationDate: "2022-01-15",
			CaseReason:       "清償債務",
			TargetRole:       "被告",
			AllPartyNames:    "王小明",
			RoleAssignments:  "被告:王小明",
			DetailURL:        "https://judgment.judicial.gov.tw/FJUD/data.aspx?ty=JD&id=c&q=q1",
			ContentLength:    0,
			RetrievedAt:      time.Now().Format("2006-01-02 15:04:05"),
		},
	}
}

func testQuery() record.Query {
	return record.Query{TargetName: "王小明", Keyword: "王小明 本票裁定", MaxRecords: 100}
}

func newTestExporter(t *testing.T, dir string) *Exporter {
	t.Helper()
	log, err := logger.NewLogger("error", "text", "")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	cfg := &config.Config{OutputDir: dir, OutputFile: "judicial_result.xlsx"}
	return NewExporter(cfg, log)
}

func TestExportWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	e := newTestExporter(t, dir)

	path := e.Export(testRecords(), testQuery())
	if path == "" {
		t.Fatal("Export() returned empty path")
	}
	if filepath.Ext(path) != ".xlsx" {
		t.Fatalf("Export() path = %q, want .xlsx", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "判決資料" || sheets[1] != "統計摘要" {
		t.Fatalf("sheets = %v, want [判決資料 統計摘要]", sheets)
	}

	// Records are sorted by adjudication date, newest first.
	first, err := f.GetCellValue("判決資料", "H2")
	if err != nil {
		t.Fatalf("Failed to read cell: %v", err)
	}
	if first != "2024-06-01" {
		t.Errorf("first data row date = %q, want 2024-06-01", first)
	}

	total, err := f.GetCellValue("統計摘要", "B2")
	if err != nil {
		t.Fatalf("Failed to read summary cell: %v", err)
	}
	if total != "3" {
		t.Errorf("summary total = %q, want 3", total)
	}
}

func TestExportEmptyRecordsSkipped(t *testing.T) {
	dir := t.TempDir()
	e := newTestExporter(t, dir)

	path := e.Export(nil, testQuery())
	if path != "" {
		t.Errorf("Export(nil) path = %q, want empty", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no output files, found %d", len(entries))
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()

	records := testRecords()
	csvPath := filepath.Join(dir, "fallback.csv")
	if err := writeCSV(csvPath, records); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(data) < 3 || data[0] != 0xEF || data[1] != 0xBB || data[2] != 0xBF {
		t.Error("CSV output missing UTF-8 byte order mark")
	}
}

func TestBuildSummary(t *testing.T) {
	rows := BuildSummary(testRecords(), testQuery())

	byItem := make(map[string]SummaryRow)
	for _, row := range rows {
		byItem[row.Item] = row
	}

	if got := byItem["總判決書數量"].Value; got != "3" {
		t.Errorf("total = %q, want 3", got)
	}
	if got := byItem["搜尋關鍵字"].Value; got != "王小明 本票裁定" {
		t.Errorf("keyword = %q", got)
	}
	if got := byItem["最常見法院"].Value; got != "臺北地方法院" {
		t.Errorf("most frequent court = %q, want 臺北地方法院", got)
	}
	if got := byItem["最常見法院"].Note; got != "出現 2 次" {
		t.Errorf("court note = %q, want 出現 2 次", got)
	}
	if got := byItem["最常見身份"].Value; got != "債務人" {
		t.Errorf("most frequent role = %q, want 債務人", got)
	}
	if got := byItem["案件年度分布"].Value; got != "3 個年度" {
		t.Errorf("year span = %q, want 3 個年度", got)
	}
	if got := byItem["案件年度分布"].Note; got != "從 民國111年 到 民國113年" {
		t.Errorf("year note = %q", got)
	}
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		want      string
		wantCount int
	}{
		{"Clear winner", []string{"a", "b", "a"}, "a", 2},
		{"Tie broken by first occurrence", []string{"b", "a", "a", "b"}, "b", 2},
		{"Empty input", nil, "無", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := mostFrequent(tt.values)
			if got != tt.want || count != tt.wantCount {
				t.Errorf("mostFrequent(%v) = (%q, %d), want (%q, %d)",
					tt.values, got, count, tt.want, tt.wantCount)
			}
		})
	}
}
