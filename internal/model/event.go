package model

import "time"

// StoredEvent is a persisted scan result, scoped to its owner. Most fields
// are nullable — a scan is valid even if only a subset of fields were parsed
// from the flyer; ConfidenceScore reflects extraction completeness.
type StoredEvent struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Title           string    `json:"title"`
	Date            *string   `json:"date"`
	Time            *string   `json:"time"`
	Venue           *string   `json:"venue"`
	Organizer       *string   `json:"organizer"`
	Contact         *string   `json:"contact"`
	Website         *string   `json:"website"`
	Category        *string   `json:"category"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}
