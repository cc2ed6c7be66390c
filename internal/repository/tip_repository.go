package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tnpcell/placement-office-api/internal/models"
)

const tipColumns = `id, title, content, student_name, company, year, COALESCE(is_active, TRUE) AS is_active, created_by, created_by_name, last_updated_by, last_updated_by_name, created_at, updated_at, deleted_at`

// TipRepository persists interview preparation tips.
type TipRepository struct {
	db *sqlx.DB
}

// NewTipRepository constructs the repository.
func NewTipRepository(db *sqlx.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) List(ctx context.Context, includeInactive bool) ([]models.Tip, error) {
	query := fmt.Sprintf(`SELECT %s FROM tips`, tipColumns)
	if !includeInactive {
		query += " WHERE is_active IS DISTINCT FROM FALSE"
	}
	query += " ORDER BY created_at DESC"
	var tips []models.Tip
	if err := r.db.SelectContext(ctx, &tips, query); err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return tips, nil
}

func (r *TipRepository) GetByID(ctx context.Context, id string) (*models.Tip, error) {
	query := fmt.Sprintf(`SELECT %s FROM tips WHERE id = $1`, tipColumns)
	var tip models.Tip
	if err := r.db.GetContext(ctx, &tip, query, id); err != nil {
		return nil, err
	}
	return &tip, nil
}

func (r *TipRepository) Create(ctx context.Context, tip *models.Tip) error {
	if tip.ID == "" {
		tip.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tip.CreatedAt = now
	tip.UpdatedAt = now
	tip.IsActive = true
	query := `INSERT INTO tips (id, title, content, student_name, company, year, is_active, created_by, created_by_name, created_at, updated_at)
VALUES (:id, :title, :content, :student_name, :company, :year, :is_active, :created_by, :created_by_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tip); err != nil {
		return fmt.Errorf("create tip: %w", err)
	}
	return nil
}

func (r *TipRepository) Update(ctx context.Context, tip *models.Tip) error {
	tip.UpdatedAt = time.Now().UTC()
	query := `UPDATE tips SET title = :title, content = :content, student_name = :student_name, company = :company, year = :year,
is_active = :is_active, last_updated_by = :last_updated_by, last_updated_by_name = :last_updated_by_name, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, tip); err != nil {
		return fmt.Errorf("update tip: %w", err)
	}
	return nil
}

// SoftDelete marks a tip inactive and stamps its deletion time.
func (r *TipRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE tips SET is_active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1", id, at); err != nil {
		return fmt.Errorf("soft delete tip: %w", err)
	}
	return nil
}
