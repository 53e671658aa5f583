package record

// Query describes one scrape run. It is immutable for the run's duration.
type Query struct {
	TargetName string `json:"target_name"`
	Keyword    string `json:"keyword"`
	MaxRecords int    `json:"max_records"`
}

// ResultRowRef is the ephemeral output of parsing one result-list row.
// It carries everything needed to open and annotate the detail page.
type ResultRowRef struct {
	DetailURL  string
	Caption    string
	DateText   string
	CaseReason string
}

// PartyMatch is a single (role, name) pair found in judgment text.
type PartyMatch struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Record is the persisted output unit, one per processed detail page.
// A Record is never mutated after the pagination loop appends it.
type Record struct {
	SequenceNumber   int    `json:"sequence_number"`
	Keyword          string `json:"keyword"`
	TargetName       string `json:"target_name"`
	Caption          string `json:"caption"`
	CourtName        string `json:"court_name"`
	AdjudicationYear string `json:"adjudication_year"`
	CaseType         string `json:"case_type"`
	AdjudicationDate string `json:"adjudication_date"`
	CaseReason       string `json:"case_reason"`
	TargetRole       string `json:"target_role"`
	AllPartyNames    string `json:"all_party_names"`
	RoleAssignments  string `json:"role_assignments"`
	DetailURL        string `json:"detail_url"`
	ContentLength    int    `json:"content_length"`
	RetrievedAt      string `json:"retrieved_at"`
}
