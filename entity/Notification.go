package entity

import "time"

// Notification is a derived, ephemeral record keyed to a report.
// One is created per report whose timestamp passes the last-checked watermark.
type Notification struct {
	ID        string    `json:"id"` // matches the report id
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}
