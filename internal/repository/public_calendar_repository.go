package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tnpcell/placement-office-api/internal/models"
)

const calendarColumns = `id, activity_id, company, activity_name, activity_type, date, time, mode, location, COALESCE(is_active, TRUE) AS is_active, published_by, published_by_name, unpublished_by, unpublished_by_name, unpublished_at, created_at, updated_at`

// PublicCalendarRepository persists published calendar entries.
type PublicCalendarRepository struct {
	db *sqlx.DB
}

// NewPublicCalendarRepository constructs the repository.
func NewPublicCalendarRepository(db *sqlx.DB) *PublicCalendarRepository {
	return &PublicCalendarRepository{db: db}
}

// GetByActivityID returns the entry for an activity, oldest first so repeated
// lookups are deterministic even if legacy duplicates exist.
func (r *PublicCalendarRepository) GetByActivityID(ctx context.Context, activityID string) (*models.PublicCalendarEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM public_activities WHERE activity_id = $1 ORDER BY created_at ASC LIMIT 1`, calendarColumns)
	var entry models.PublicCalendarEntry
	if err := r.db.GetContext(ctx, &entry, query, activityID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert publishes an entry. The unique index on activity_id guarantees at
// most one row per activity: a concurrent first publish loses the insert race
// and lands on the update arm instead, which preserves created_at.
func (r *PublicCalendarRepository) Upsert(ctx context.Context, entry *models.PublicCalendarEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.IsActive = true
	query := `INSERT INTO public_activities (id, activity_id, company, activity_name, activity_type, date, time, mode, location, is_active, published_by, published_by_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $11, $12, $12)
ON CONFLICT (activity_id) DO UPDATE SET
company = EXCLUDED.company, activity_name = EXCLUDED.activity_name, activity_type = EXCLUDED.activity_type, date = EXCLUDED.date,
time = EXCLUDED.time, mode = EXCLUDED.mode, location = EXCLUDED.location, is_active = TRUE,
published_by = EXCLUDED.published_by, published_by_name = EXCLUDED.published_by_name,
unpublished_by = NULL, unpublished_by_name = NULL, unpublished_at = NULL, updated_at = EXCLUDED.updated_at
RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.ActivityID, entry.Company, entry.ActivityName, entry.ActivityType, entry.Date,
		entry.Time, entry.Mode, entry.Location, entry.PublishedBy, entry.PublishedByName, now)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("upsert public activity: %w", err)
	}
	return nil
}

// Retract marks an activity's entry inactive. Returns the number of rows
// touched so callers can report absent entries without a prior read.
func (r *PublicCalendarRepository) Retract(ctx context.Context, activityID string, actor models.Actor, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE public_activities SET is_active = FALSE, unpublished_by = $2, unpublished_by_name = $3, unpublished_at = $4, updated_at = $4 WHERE activity_id = $1`,
		activityID, actor.ID, actor.Name, at)
	if err != nil {
		return 0, fmt.Errorf("retract public activity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("retract public activity: %w", err)
	}
	return affected, nil
}

// ListActive returns every non-retracted calendar entry. Ordering is applied
// in the service after date re-normalization, not here.
func (r *PublicCalendarRepository) ListActive(ctx context.Context) ([]models.PublicCalendarEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM public_activities WHERE is_active IS DISTINCT FROM FALSE`, calendarColumns)
	var entries []models.PublicCalendarEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list public activities: %w", err)
	}
	return entries, nil
}

// DeleteByActivityID permanently removes an activity's entry.
func (r *PublicCalendarRepository) DeleteByActivityID(ctx context.Context, activityID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM public_activities WHERE activity_id = $1", activityID); err != nil {
		return fmt.Errorf("delete public activity: %w", err)
	}
	return nil
}
