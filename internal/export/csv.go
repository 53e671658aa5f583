package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// writeCSV is the fallback serialization used when the Excel workbook
// cannot be written. The UTF-8 byte order mark keeps spreadsheet
// applications from misreading the CJK content.
func writeCSV(path string, records []record.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString("\xEF\xBB\xBF"); err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(recordHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.SequenceNumber), rec.Keyword, rec.TargetName, rec.Caption, rec.CourtName,
			rec.AdjudicationYear, rec.CaseType, rec.AdjudicationDate, rec.CaseReason, rec.TargetRole,
			rec.AllPartyNames, rec.RoleAssignments, rec.DetailURL, strconv.Itoa(rec.ContentLength), rec.RetrievedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
