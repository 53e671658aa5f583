package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"github.com/weichenlin/judgment-fetcher/internal/config"
	"github.com/weichenlin/judgment-fetcher/internal/record"
	"github.com/weichenlin/judgment-fetcher/pkg/logger"
)

const (
	dataSheet    = "判決資料"
	summarySheet = "統計摘要"

	// maxColumnWidth caps auto-sized columns.
	maxColumnWidth = 50
)

// recordHeaders is the fixed column order of the data sheet.
var recordHeaders = []string{
	"序號", "搜尋關鍵字", "目標人物", "判決字號", "法院名稱",
	"裁判年度", "案件類型", "裁判日期", "裁判案由", "目標人物身份",
	"所有當事人", "當事人角色分配", "判決書連結", "內容長度", "擷取時間",
}

// Exporter serializes accumulated records to a two-sheet Excel workbook,
// degrading to a flat CSV file when the workbook cannot be written.
type Exporter struct {
	outputDir  string
	outputFile string
	logger     *logger.Logger
}

// NewExporter creates an exporter writing to the configured output path.
func NewExporter(cfg *config.Config, logger *logger.Logger) *Exporter {
	return &Exporter{
		outputDir:  cfg.OutputDir,
		outputFile: cfg.OutputFile,
		logger:     logger,
	}
}

// Export writes records sorted by adjudication date, newest first, plus a
// derived summary sheet. An empty record list is skipped with a warning.
// Serialization failures degrade to CSV; when both formats fail the
// failures are logged and the run ends without raising further.
func (e *Exporter) Export(records []record.Record, q record.Query) string {
	if len(records) == 0 {
		e.logger.Warn("No records to export")
		return ""
	}

	sorted := make([]record.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AdjudicationDate > sorted[j].AdjudicationDate
	})

	path := filepath.Join(e.outputDir, e.outputFile)
	if err := e.writeWorkbook(path, sorted, q); err != nil {
		e.logger.Error("Failed to write Excel workbook", "path", path, "error", err)

		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if csvErr := writeCSV(csvPath, sorted); csvErr != nil {
			e.logger.Error("CSV fallback also failed", "path", csvPath, "error", csvErr)
			return ""
		}
		e.logger.Info("Exported records via CSV fallback", "path", csvPath, "records", len(sorted))
		return csvPath
	}

	e.logger.Info("Exported records", "path", path, "records", len(sorted))
	return path
}

func (e *Exporter) writeWorkbook(path string, records []record.Record, q record.Query) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return err
	}
	if err := writeRecordSheet(f, records); err != nil {
		return fmt.Errorf("failed to write data sheet: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, BuildSummary(records, q)); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}

	return f.SaveAs(path)
}

func writeRecordSheet(f *excelize.File, records []record.Record) error {
	if err := writeHeaderRow(f, dataSheet, recordHeaders); err != nil {
		return err
	}

	widths := headerWidths(recordHeaders)
	for i, rec := range records {
		values := recordValues(rec)
		for col, value := range values {
			cell := columnName(col+1) + strconv.Itoa(i+2)
			if err := f.SetCellValue(dataSheet, cell, value); err != nil {
				return err
			}
			widths[col] = maxInt(widths[col], cellWidth(value))
		}
	}

	return applyColumnWidths(f, dataSheet, widths)
}

func writeSummarySheet(f *excelize.File, rows []SummaryRow) error {
	headers := []string{"項目", "數值", "說明"}
	if err := writeHeaderRow(f, summarySheet, headers); err != nil {
		return err
	}

	widths := headerWidths(headers)
	for i, row := range rows {
		values := []interface{}{row.Item, row.Value, row.Note}
		for col, value := range values {
			cell := columnName(col+1) + strconv.Itoa(i+2)
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return err
			}
			widths[col] = maxInt(widths[col], cellWidth(value))
		}
	}

	return applyColumnWidths(f, summarySheet, widths)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for col, header := range headers {
		cell := columnName(col+1) + "1"
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last := columnName(len(headers)) + "1"
	return f.SetCellStyle(sheet, "A1", last, style)
}

func applyColumnWidths(f *excelize.File, sheet string, widths []int) error {
	for col, width := range widths {
		name := columnName(col + 1)
		adjusted := minInt(width+3, maxColumnWidth)
		if err := f.SetColWidth(sheet, name, name, float64(adjusted)); err != nil {
			return err
		}
	}
	return nil
}

func recordValues(rec record.Record) []interface{} {
	return []interface{}{
		rec.SequenceNumber, rec.Keyword, rec.TargetName, rec.Caption, rec.CourtName,
		rec.AdjudicationYear, rec.CaseType, rec.AdjudicationDate, rec.CaseReason, rec.TargetRole,
		rec.AllPartyNames, rec.RoleAssignments, rec.DetailURL, rec.ContentLength, rec.RetrievedAt,
	}
}

func headerWidths(headers []string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return widths
}

func cellWidth(value interface{}) int {
	return utf8.RuneCountInString(fmt.Sprintf("%v", value))
}

// columnName converts a column number to an Excel column name
// (A, B, ..., AA, AB, ...).
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
