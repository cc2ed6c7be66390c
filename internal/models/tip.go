package models

import "time"

// Tip is a placement-experience tip shared on the public page.
type Tip struct {
	ID                string     `db:"id" json:"id"`
	Title             string     `db:"title" json:"title"`
	Content           *string    `db:"content" json:"content,omitempty"`
	StudentName       *string    `db:"student_name" json:"student_name,omitempty"`
	Company           *string    `db:"company" json:"company,omitempty"`
	Year              *int       `db:"year" json:"year,omitempty"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	CreatedBy         string     `db:"created_by" json:"created_by"`
	CreatedByName     string     `db:"created_by_name" json:"created_by_name"`
	LastUpdatedBy     *string    `db:"last_updated_by" json:"last_updated_by,omitempty"`
	LastUpdatedByName *string    `db:"last_updated_by_name" json:"last_updated_by_name,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
