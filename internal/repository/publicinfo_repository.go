package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tnpcell/placement-office-api/internal/models"
)

const publicInfoColumns = `id, title, description, type, url, category, COALESCE(is_active, TRUE) AS is_active, start_date, end_date, created_by, created_by_name, last_updated_by, last_updated_by_name, created_at, updated_at, deleted_at`

// PublicInfoRepository persists public info items.
type PublicInfoRepository struct {
	db *sqlx.DB
}

// NewPublicInfoRepository constructs the repository.
func NewPublicInfoRepository(db *sqlx.DB) *PublicInfoRepository {
	return &PublicInfoRepository{db: db}
}

// List returns items by equality filters only. Visibility-window filtering
// happens in the service layer.
func (r *PublicInfoRepository) List(ctx context.Context, filter models.PublicInfoFilter) ([]models.PublicInfoItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM public_info WHERE 1=1`, publicInfoColumns)
	args := []interface{}{}
	if !filter.IncludeInactive {
		query += " AND is_active IS DISTINCT FROM FALSE"
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, *filter.Type)
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", len(args)+1)
		args = append(args, filter.Category)
	}
	query += " ORDER BY created_at DESC"
	var items []models.PublicInfoItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list public info: %w", err)
	}
	return items, nil
}

// GetByID returns an item by identifier.
func (r *PublicInfoRepository) GetByID(ctx context.Context, id string) (*models.PublicInfoItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM public_info WHERE id = $1`, publicInfoColumns)
	var item models.PublicInfoItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item.
func (r *PublicInfoRepository) Create(ctx context.Context, item *models.PublicInfoItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.IsActive = true
	query := `INSERT INTO public_info (id, title, description, type, url, category, is_active, start_date, end_date, created_by, created_by_name, created_at, updated_at)
VALUES (:id, :title, :description, :type, :url, :category, :is_active, :start_date, :end_date, :created_by, :created_by_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create public info: %w", err)
	}
	return nil
}

// Update modifies an existing item.
func (r *PublicInfoRepository) Update(ctx context.Context, item *models.PublicInfoItem) error {
	item.UpdatedAt = time.Now().UTC()
	query := `UPDATE public_info SET title = :title, description = :description, type = :type, url = :url, category = :category,
is_active = :is_active, start_date = :start_date, end_date = :end_date,
last_updated_by = :last_updated_by, last_updated_by_name = :last_updated_by_name, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update public info: %w", err)
	}
	return nil
}

// SoftDelete marks an item inactive and stamps its deletion time.
func (r *PublicInfoRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE public_info SET is_active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1", id, at); err != nil {
		return fmt.Errorf("soft delete public info: %w", err)
	}
	return nil
}
