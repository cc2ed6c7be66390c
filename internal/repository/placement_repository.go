package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tnpcell/placement-office-api/internal/models"
)

const placementColumns = `id, company, year, role, package_lpa, stipend_per_month, internship_duration_months, internship_period, visited_on, hired_count, students, COALESCE(is_active, TRUE) AS is_active, created_at, updated_at, deleted_at`

// PlacementRepository persists the placement ledger.
type PlacementRepository struct {
	db *sqlx.DB
}

// NewPlacementRepository constructs the repository.
func NewPlacementRepository(db *sqlx.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

// List returns ledger records for admin views.
func (r *PlacementRepository) List(ctx context.Context, filter models.PlacementFilter) ([]models.PlacementRecord, int, error) {
	base := "FROM placements"
	where := []string{"1=1"}
	args := []interface{}{}
	if !filter.IncludeInactive {
		where = append(where, "is_active IS DISTINCT FROM FALSE")
	}
	if filter.Year != nil {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, *filter.Year)
	}
	if filter.Company != "" {
		where = append(where, fmt.Sprintf("company ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Company+"%")
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY created_at ASC LIMIT %d OFFSET %d`,
		placementColumns, base, whereClause, size, offset)
	var records []models.PlacementRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list placements: %w", err)
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count placements: %w", err)
	}
	return records, total, nil
}

// ListActive returns every active ledger record, optionally one year only.
// A row lacking the is_active flag counts as active. Insertion order is
// preserved so downstream aggregation stays stable.
func (r *PlacementRepository) ListActive(ctx context.Context, year *int) ([]models.PlacementRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM placements WHERE is_active IS DISTINCT FROM FALSE`, placementColumns)
	args := []interface{}{}
	if year != nil {
		query += " AND year = $1"
		args = append(args, *year)
	}
	query += " ORDER BY created_at ASC"
	var records []models.PlacementRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list active placements: %w", err)
	}
	return records, nil
}

// GetByID returns a ledger record by identifier.
func (r *PlacementRepository) GetByID(ctx context.Context, id string) (*models.PlacementRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM placements WHERE id = $1`, placementColumns)
	var record models.PlacementRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new ledger record.
func (r *PlacementRepository) Create(ctx context.Context, record *models.PlacementRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.IsActive = true
	query := `INSERT INTO placements (id, company, year, role, package_lpa, stipend_per_month, internship_duration_months, internship_period, visited_on, hired_count, students, is_active, created_at, updated_at)
VALUES (:id, :company, :year, :role, :package_lpa, :stipend_per_month, :internship_duration_months, :internship_period, :visited_on, :hired_count, :students, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create placement: %w", err)
	}
	return nil
}

// Update modifies an existing ledger record.
func (r *PlacementRepository) Update(ctx context.Context, record *models.PlacementRecord) error {
	record.UpdatedAt = time.Now().UTC()
	query := `UPDATE placements SET company = :company, year = :year, role = :role, package_lpa = :package_lpa,
stipend_per_month = :stipend_per_month, internship_duration_months = :internship_duration_months, internship_period = :internship_period,
visited_on = :visited_on, hired_count = :hired_count, students = :students, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update placement: %w", err)
	}
	return nil
}

// SoftDelete marks a record inactive and stamps its deletion time.
func (r *PlacementRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE placements SET is_active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1", id, at); err != nil {
		return fmt.Errorf("soft delete placement: %w", err)
	}
	return nil
}

// Activate restores a soft-deleted record.
func (r *PlacementRepository) Activate(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE placements SET is_active = TRUE, deleted_at = NULL, updated_at = $2 WHERE id = $1", id, at); err != nil {
		return fmt.Errorf("activate placement: %w", err)
	}
	return nil
}
