package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PlacedStudent is one entry in a placement record's ordered student list.
type PlacedStudent struct {
	Name            string  `json:"name"`
	AdmissionNumber *string `json:"admission_number,omitempty"`
	Department      *string `json:"department,omitempty"`
}

// StudentList stores the ordered students as a JSONB column.
type StudentList []PlacedStudent

// Value implements driver.Valuer.
func (s StudentList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StudentList) Scan(src interface{}) error {
	if src == nil {
		*s = StudentList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported students column type %T", src)
	}
	if len(raw) == 0 {
		*s = StudentList{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// PlacementRecord represents one company/drive outcome in the ledger.
// Records are soft-deleted only; deactivation stamps deleted_at and keeps
// the row for audit history.
type PlacementRecord struct {
	ID                       string      `db:"id" json:"id"`
	Company                  string      `db:"company" json:"company"`
	Year                     int         `db:"year" json:"year"`
	Role                     *string     `db:"role" json:"role,omitempty"`
	PackageLPA               *float64    `db:"package_lpa" json:"package_lpa,omitempty"`
	StipendPerMonth          *float64    `db:"stipend_per_month" json:"stipend_per_month,omitempty"`
	InternshipDurationMonths *int        `db:"internship_duration_months" json:"internship_duration_months,omitempty"`
	InternshipPeriod         *string     `db:"internship_period" json:"internship_period,omitempty"`
	VisitedOn                *string     `db:"visited_on" json:"visited_on,omitempty"`
	HiredCount               *int        `db:"hired_count" json:"hired_count,omitempty"`
	Students                 StudentList `db:"students" json:"students"`
	IsActive                 bool        `db:"is_active" json:"is_active"`
	CreatedAt                time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time   `db:"updated_at" json:"updated_at"`
	DeletedAt                *time.Time  `db:"deleted_at" json:"deleted_at,omitempty"`
}

// Hires returns the record's contribution to hire totals: the explicit
// hired_count when present, otherwise the student list length.
func (r PlacementRecord) Hires() int {
	if r.HiredCount != nil {
		return *r.HiredCount
	}
	return len(r.Students)
}

// PlacementFilter narrows admin ledger listings.
type PlacementFilter struct {
	Year            *int
	Company         string
	IncludeInactive bool
	Page            int
	PageSize        int
}

// PlacementSummary holds the derived headline statistics.
type PlacementSummary struct {
	TotalCompanies int     `json:"total_companies"`
	TotalHired     int     `json:"total_hired"`
	TopPackage     float64 `json:"top_package"`
}

// CompanyHires is one leaderboard row.
type CompanyHires struct {
	Company string `json:"company"`
	Hires   int    `json:"hires"`
}
