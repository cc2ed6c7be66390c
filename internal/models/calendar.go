package models

import "time"

// ActivitySnapshot is the reconciler's view of an externally managed
// recruiting activity: a handful of public fields. DateAt carries a
// store-native timestamp when the source system provides one; Date is the
// raw string form otherwise.
type ActivitySnapshot struct {
	ID       string     `json:"id"`
	Company  string     `json:"company"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Date     string     `json:"date"`
	DateAt   *time.Time `json:"date_at,omitempty"`
	Time     *string    `json:"time,omitempty"`
	Mode     *string    `json:"mode,omitempty"`
	Location *string    `json:"location,omitempty"`
}

// PublicCalendarEntry is the published projection of exactly one activity.
// At most one entry exists per activity_id, enforced by a unique index.
type PublicCalendarEntry struct {
	ID                string     `db:"id" json:"id"`
	ActivityID        string     `db:"activity_id" json:"activity_id"`
	Company           string     `db:"company" json:"company"`
	ActivityName      string     `db:"activity_name" json:"activity_name"`
	ActivityType      string     `db:"activity_type" json:"activity_type"`
	Date              string     `db:"date" json:"date"`
	Time              *string    `db:"time" json:"time,omitempty"`
	Mode              *string    `db:"mode" json:"mode,omitempty"`
	Location          *string    `db:"location" json:"location,omitempty"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	PublishedBy       string     `db:"published_by" json:"published_by"`
	PublishedByName   string     `db:"published_by_name" json:"published_by_name"`
	UnpublishedBy     *string    `db:"unpublished_by" json:"unpublished_by,omitempty"`
	UnpublishedByName *string    `db:"unpublished_by_name" json:"unpublished_by_name,omitempty"`
	UnpublishedAt     *time.Time `db:"unpublished_at" json:"unpublished_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// UnpublishResult reports whether an unpublish call retracted anything.
// Absence of an entry is a normal outcome, not an error.
type UnpublishResult struct {
	Success bool `json:"success"`
}
