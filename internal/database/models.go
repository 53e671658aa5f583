package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// RunLog records one scrape run: its query, outcome and export location.
type RunLog struct {
	gorm.Model
	Keyword        string    `json:"keyword"`
	TargetName     string    `json:"target_name"`
	MaxRecords     int       `json:"max_records"`
	ProcessedCount int       `json:"processed_count"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message"`
	ExportPath     string    `json:"export_path"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// JudgmentRecord is an archived judgment record tied to the run that
// produced it.
type JudgmentRecord struct {
	gorm.Model
	RunLogID         uint   `json:"run_log_id" gorm:"index"`
	SequenceNumber   int    `json:"sequence_number"`
	Keyword          string `json:"keyword"`
	TargetName       string `json:"target_name"`
	Caption          string `json:"caption"`
	CourtName        string `json:"court_name" gorm:"index"`
	AdjudicationYear string `json:"adjudication_year"`
	CaseType         string `json:"case_type"`
	AdjudicationDate string `json:"adjudication_date"`
	CaseReason       string `json:"case_reason"`
	TargetRole       string `json:"target_role"`
	AllPartyNames    string `json:"all_party_names" gorm:"type:text"`
	RoleAssignments  string `json:"role_assignments" gorm:"type:text"`
	DetailURL        string `json:"detail_url" gorm:"index"`
	ContentLength    int    `json:"content_length"`
	RetrievedAt      string `json:"retrieved_at"`
}

func (RunLog) TableName() string {
	return "run_logs"
}

func (JudgmentRecord) TableName() string {
	return "judgment_records"
}

// FromRecord converts an in-memory record into its archived form.
func FromRecord(runID uint, rec record.Record) JudgmentRecord {
	return JudgmentRecord{
		RunLogID:         runID,
		SequenceNumber:   rec.SequenceNumber,
		Keyword:          rec.Keyword,
		TargetName:       rec.TargetName,
		Caption:          rec.Caption,
		CourtName:        rec.CourtName,
		AdjudicationYear: rec.AdjudicationYear,
		CaseType:         rec.CaseType,
		AdjudicationDate: rec.AdjudicationDate,
		CaseReason:       rec.CaseReason,
		TargetRole:       rec.TargetRole,
		AllPartyNames:    rec.AllPartyNames,
		RoleAssignments:  rec.RoleAssignments,
		DetailURL:        rec.DetailURL,
		ContentLength:    rec.ContentLength,
		RetrievedAt:      rec.RetrievedAt,
	}
}
