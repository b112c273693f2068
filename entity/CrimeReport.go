package entity

import "time"

// ContactInfo is only present when the reporter asked for updates.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CrimeReport is the boundary contract between intake, the store and every
// consuming view (tables, charts, map markers, notification feed).
// ID and Timestamp are set once at creation and never reassigned.
type CrimeReport struct {
	ID            string       `gorm:"primaryKey" json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Location      string       `json:"location"`
	CrimeType     string       `json:"crimeType"`
	Timestamp     time.Time    `json:"timestamp"`     // when the report was submitted
	CrimeDateTime time.Time    `json:"crimeDateTime"` // when the crime occurred
	IsAtScene     bool         `json:"isAtScene"`
	Status        ReportStatus `json:"status"`

	// Media and Audio hold base64 data URLs, not transient handles.
	Media []string `gorm:"type:text;serializer:json" json:"media,omitempty"`
	Audio string   `gorm:"type:text" json:"audio,omitempty"`

	WantsUpdate bool         `json:"wantsUpdate"`
	ContactInfo *ContactInfo `gorm:"type:text;serializer:json" json:"contactInfo"`
	Coordinates Coordinates  `gorm:"embedded;embeddedPrefix:coord_" json:"coordinates"`

	AdminNotes string `json:"adminNotes,omitempty"`
}
