package domain

import "time"

// SelectedFile is the in-memory handle of the one file currently chosen
// for upload. At most one exists at a time; choosing another file replaces
// it wholesale.
type SelectedFile struct {
	Name string `json:"name"`
	// file size in bytes
	Size int64 `json:"size"`
	// MIME type, informational only, resolved by extension
	Type string `json:"type,omitempty"`
	Path string `json:"path,omitempty"`
}

// ProviderRecord is one row of the uploaded CSV, keyed by header. Headers
// keeps the column order so records render in a stable order.
type ProviderRecord struct {
	Headers []string          `json:"headers"`
	Fields  map[string]string `json:"fields"`
}

// Get returns the value of a column, or "" if the column is absent.
func (r ProviderRecord) Get(header string) string {
	return r.Fields[header]
}

// CleanOptions are the option checkboxes carried alongside the file on
// form submission.
type CleanOptions struct {
	FixAddresses         bool `json:"fix_addresses"`
	NormalizePhones      bool `json:"normalize_phones"`
	StandardizeSpecialty bool `json:"standardize_specialty"`
	FlagSuspiciousFields bool `json:"flag_suspicious_fields"`
}

// AllCleanOptions is the state the sample loader pre-checks.
func AllCleanOptions() CleanOptions {
	return CleanOptions{
		FixAddresses:         true,
		NormalizePhones:      true,
		StandardizeSpecialty: true,
		FlagSuspiciousFields: true,
	}
}

// CleanResult is the cleaner's verdict for a single provider record.
type CleanResult struct {
	CleanedData   map[string]string `json:"cleaned_data"`
	Issues        []string          `json:"issues"`
	AccuracyScore int               `json:"accuracy_score"` // 0..100
}

// RecordReport pairs an input record with its clean result.
type RecordReport struct {
	Record ProviderRecord `json:"record"`
	Result CleanResult    `json:"result"`
}

// CleanReport is the server's response for one uploaded CSV.
type CleanReport struct {
	Filename    string         `json:"filename"`
	Records     []RecordReport `json:"records"`
	MeanScore   int            `json:"meanScore"`
	TotalIssues int            `json:"totalIssues"`
	Elapsed     time.Duration  `json:"elapsed"`
}

// Summarize recomputes the aggregate fields from Records.
func (r *CleanReport) Summarize() {
	r.TotalIssues = 0
	if len(r.Records) == 0 {
		r.MeanScore = 0
		return
	}
	sum := 0
	for _, rec := range r.Records {
		sum += rec.Result.AccuracyScore
		r.TotalIssues += len(rec.Result.Issues)
	}
	r.MeanScore = sum / len(r.Records)
}
