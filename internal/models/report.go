package models

import "time"

// Report statuses form a closed set; new reports always start as pending.
const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportDismissed = "dismissed"
)

// Report is a user-submitted piece of reported content. Reference is a public
// identifier safe to hand back to the reporter.
type Report struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	UserID      int64     `json:"user_id"`
	ContentType string    `json:"content_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidReportStatus reports whether s is one of the known statuses.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportPending, ReportReviewed, ReportDismissed:
		return true
	default:
		return false
	}
}
