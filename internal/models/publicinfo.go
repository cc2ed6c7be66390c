package models

import "time"

// PublicInfoType categorises public info items.
type PublicInfoType string

const (
	PublicInfoAnnouncement PublicInfoType = "announcement"
	PublicInfoLink         PublicInfoType = "link"
	PublicInfoResource     PublicInfoType = "resource"
	PublicInfoFAQ          PublicInfoType = "faq"
)

// PublicInfoItem is an announcement, link, resource or FAQ curated for the
// public placement page. StartDate/EndDate form an inclusive visibility
// window compared as ISO calendar-day strings.
type PublicInfoItem struct {
	ID                string         `db:"id" json:"id"`
	Title             string         `db:"title" json:"title"`
	Description       *string        `db:"description" json:"description,omitempty"`
	Type              PublicInfoType `db:"type" json:"type"`
	URL               *string        `db:"url" json:"url,omitempty"`
	Category          *string        `db:"category" json:"category,omitempty"`
	IsActive          bool           `db:"is_active" json:"is_active"`
	StartDate         *string        `db:"start_date" json:"start_date,omitempty"`
	EndDate           *string        `db:"end_date" json:"end_date,omitempty"`
	CreatedBy         string         `db:"created_by" json:"created_by"`
	CreatedByName     string         `db:"created_by_name" json:"created_by_name"`
	LastUpdatedBy     *string        `db:"last_updated_by" json:"last_updated_by,omitempty"`
	LastUpdatedByName *string        `db:"last_updated_by_name" json:"last_updated_by_name,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt         *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`
}

// VisibleOn reports whether the item should appear on the public feed for
// the given canonical calendar day.
func (i PublicInfoItem) VisibleOn(day string) bool {
	if !i.IsActive {
		return false
	}
	if i.StartDate != nil && *i.StartDate > day {
		return false
	}
	if i.EndDate != nil && *i.EndDate < day {
		return false
	}
	return true
}

// PublicInfoFilter narrows admin listings.
type PublicInfoFilter struct {
	Type            *PublicInfoType
	Category        string
	IncludeInactive bool
	Page            int
	PageSize        int
}
