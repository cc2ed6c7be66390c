package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/pkg/dates"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type publicCalendarRepository interface {
	GetByActivityID(ctx context.Context, activityID string) (*models.PublicCalendarEntry, error)
	Upsert(ctx context.Context, entry *models.PublicCalendarEntry) error
	Retract(ctx context.Context, activityID string, actor models.Actor, at time.Time) (int64, error)
	ListActive(ctx context.Context) ([]models.PublicCalendarEntry, error)
	DeleteByActivityID(ctx context.Context, activityID string) error
}

type calendarCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidateCalendar(ctx context.Context)
}

// calendarActiveKey holds the sorted public calendar. It matches the
// "calendar:*" pattern InvalidateCalendar clears.
const calendarActiveKey = "calendar:active"

type publicationMetrics interface {
	RecordPublish(success bool)
	RecordUnpublish(success bool)
}

// PublicationService reconciles externally managed recruiting activities into
// the public calendar. Publishing is idempotent per activity: the repository's
// unique index keeps at most one entry per activity_id, so concurrent
// publishes converge on a single row.
type PublicationService struct {
	repo    publicCalendarRepository
	cache   calendarCache
	metrics publicationMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewPublicationService constructs the service. Cache and metrics may be nil.
func NewPublicationService(repo publicCalendarRepository, cache calendarCache, metrics publicationMetrics, logger *zap.Logger) *PublicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationService{repo: repo, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// Publish projects an activity onto the public calendar. The activity date is
// normalized to the canonical YYYY-MM-DD form before anything is written; an
// activity whose date cannot be normalized is rejected without touching the
// store. Republishing an already-published activity refreshes every projected
// field and reactivates a retracted entry in place.
func (s *PublicationService) Publish(ctx context.Context, activity models.ActivitySnapshot, actor models.Actor) (*models.PublicCalendarEntry, error) {
	day, ok := dates.Resolve(activity.DateAt, activity.Date)
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordPublish(false)
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, "activity "+activity.ID+" has no usable date")
	}

	actor = actor.OrDefaults()
	entry := &models.PublicCalendarEntry{
		ActivityID:      activity.ID,
		Company:         activity.Company,
		ActivityName:    activity.Name,
		ActivityType:    activity.Type,
		Date:            day,
		Time:            activity.Time,
		Mode:            activity.Mode,
		Location:        activity.Location,
		PublishedBy:     actor.ID,
		PublishedByName: actor.Name,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		if s.metrics != nil {
			s.metrics.RecordPublish(false)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPublish(true)
	}
	s.invalidate(ctx)
	s.logger.Info("activity published",
		zap.String("activity_id", activity.ID),
		zap.String("date", day),
		zap.String("published_by", actor.ID))
	return entry, nil
}

// Unpublish retracts an activity's calendar entry. A missing entry is a
// normal outcome reported through the result, never an error.
func (s *PublicationService) Unpublish(ctx context.Context, activityID string, actor models.Actor) (*models.UnpublishResult, error) {
	actor = actor.OrDefaults()
	affected, err := s.repo.Retract(ctx, activityID, actor, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if s.metrics != nil {
			s.metrics.RecordUnpublish(false)
		}
		return &models.UnpublishResult{Success: false}, nil
	}

	if s.metrics != nil {
		s.metrics.RecordUnpublish(true)
	}
	s.invalidate(ctx)
	s.logger.Info("activity unpublished",
		zap.String("activity_id", activityID),
		zap.String("unpublished_by", actor.ID))
	return &models.UnpublishResult{Success: true}, nil
}

// GetByActivityID returns the calendar entry for an activity, retracted or not.
func (s *PublicationService) GetByActivityID(ctx context.Context, activityID string) (*models.PublicCalendarEntry, error) {
	entry, err := s.repo.GetByActivityID(ctx, activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "activity is not published")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar entry")
	}
	return entry, nil
}

// ListActivePublic returns the public calendar, soonest first. The sorted
// slice is cached under calendarActiveKey; publish, unpublish and delete
// invalidate it. Stored dates are re-normalized on the way out so rows written
// before the canonical form was enforced still sort correctly; rows whose
// dates cannot be normalized are dropped rather than surfaced out of order.
func (s *PublicationService) ListActivePublic(ctx context.Context) ([]models.PublicCalendarEntry, error) {
	if s.cache != nil {
		var cached []models.PublicCalendarEntry
		if err := s.cache.Get(ctx, calendarActiveKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list public calendar")
	}

	out := make([]models.PublicCalendarEntry, 0, len(entries))
	for _, entry := range entries {
		day, ok := dates.Normalize(entry.Date)
		if !ok {
			s.logger.Warn("dropping calendar entry with unusable date",
				zap.String("activity_id", entry.ActivityID),
				zap.String("date", entry.Date))
			continue
		}
		entry.Date = day
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if s.cache != nil {
		if err := s.cache.Set(ctx, calendarActiveKey, out, 0); err != nil {
			s.logger.Warn("failed to cache public calendar", zap.Error(err))
		}
	}
	return out, nil
}

// DeleteByActivityID permanently removes an activity's calendar entry.
// Deleting an activity that was never published is a no-op.
func (s *PublicationService) DeleteByActivityID(ctx context.Context, activityID string) error {
	if err := s.repo.DeleteByActivityID(ctx, activityID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete calendar entry")
	}
	s.invalidate(ctx)
	return nil
}

func (s *PublicationService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCalendar(ctx)
	}
}
