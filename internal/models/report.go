package models

import "time"

// ReportType selects the dataset exported by a report job.
type ReportType string

const (
	ReportTypeLedger      ReportType = "LEDGER"
	ReportTypeLeaderboard ReportType = "LEADERBOARD"
)

// ReportFormat selects the rendered output format.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportStatus tracks an export job's lifecycle.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "PENDING"
	ReportStatusReady   ReportStatus = "READY"
	ReportStatusFailed  ReportStatus = "FAILED"
)

// ReportJobParams narrows the exported dataset.
type ReportJobParams struct {
	Year   *int         `json:"year,omitempty"`
	Format ReportFormat `json:"format"`
}

// ReportJob describes one requested export.
type ReportJob struct {
	ID          string          `json:"id"`
	Type        ReportType      `json:"type"`
	Params      ReportJobParams `json:"params"`
	Status      ReportStatus    `json:"status"`
	DownloadURL string          `json:"download_url,omitempty"`
	Error       string          `json:"error,omitempty"`
	RequestedBy string          `json:"requested_by"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
