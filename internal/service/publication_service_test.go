package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type calendarRepoStub struct {
	entries map[string]*models.PublicCalendarEntry
	seq     int
	failAll error
}

func newCalendarRepoStub() *calendarRepoStub {
	return &calendarRepoStub{entries: map[string]*models.PublicCalendarEntry{}}
}

func (s *calendarRepoStub) GetByActivityID(ctx context.Context, activityID string) (*models.PublicCalendarEntry, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	entry, ok := s.entries[activityID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *entry
	return &cp, nil
}

func (s *calendarRepoStub) Upsert(ctx context.Context, entry *models.PublicCalendarEntry) error {
	if s.failAll != nil {
		return s.failAll
	}
	now := time.Now().UTC()
	if existing, ok := s.entries[entry.ActivityID]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		s.seq++
		entry.ID = "entry-" + time.Now().Format("150405") + "-" + string(rune('a'+s.seq))
		entry.CreatedAt = now
	}
	entry.IsActive = true
	entry.UpdatedAt = now
	cp := *entry
	s.entries[entry.ActivityID] = &cp
	return nil
}

func (s *calendarRepoStub) Retract(ctx context.Context, activityID string, actor models.Actor, at time.Time) (int64, error) {
	if s.failAll != nil {
		return 0, s.failAll
	}
	entry, ok := s.entries[activityID]
	if !ok {
		return 0, nil
	}
	entry.IsActive = false
	entry.UnpublishedBy = &actor.ID
	entry.UnpublishedByName = &actor.Name
	entry.UnpublishedAt = &at
	return 1, nil
}

func (s *calendarRepoStub) ListActive(ctx context.Context) ([]models.PublicCalendarEntry, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	var out []models.PublicCalendarEntry
	for _, entry := range s.entries {
		if entry.IsActive {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (s *calendarRepoStub) DeleteByActivityID(ctx context.Context, activityID string) error {
	if s.failAll != nil {
		return s.failAll
	}
	delete(s.entries, activityID)
	return nil
}

type calendarCacheStub struct {
	data        map[string][]models.PublicCalendarEntry
	hits        int
	sets        int
	invalidated int
}

func newCalendarCacheStub() *calendarCacheStub {
	return &calendarCacheStub{data: map[string][]models.PublicCalendarEntry{}}
}

func (s *calendarCacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	cached, ok := s.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	s.hits++
	*dest.(*[]models.PublicCalendarEntry) = cached
	return nil
}

func (s *calendarCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	s.data[key] = value.([]models.PublicCalendarEntry)
	return nil
}

func (s *calendarCacheStub) InvalidateCalendar(ctx context.Context) {
	s.invalidated++
	s.data = map[string][]models.PublicCalendarEntry{}
}

func testActor() models.Actor {
	return models.Actor{ID: "admin-1", Name: "Jordan Admin"}
}

func driveSnapshot(id, rawDate string) models.ActivitySnapshot {
	return models.ActivitySnapshot{
		ID:      id,
		Company: "Acme Corp",
		Name:    "Campus Drive",
		Type:    "drive",
		Date:    rawDate,
	}
}

func TestPublicationServicePublishNormalizesDate(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	entry, err := svc.Publish(context.Background(), driveSnapshot("act-1", "02/03/2025"), testActor())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", entry.Date)
	assert.Equal(t, "admin-1", entry.PublishedBy)
	assert.True(t, entry.IsActive)
}

func TestPublicationServicePublishPrefersTimestamp(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	at := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	snapshot := driveSnapshot("act-1", "garbage")
	snapshot.DateAt = &at

	entry, err := svc.Publish(context.Background(), snapshot, testActor())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", entry.Date)
}

func TestPublicationServicePublishRejectsBadDateBeforeWrite(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	_, err := svc.Publish(context.Background(), driveSnapshot("act-1", "sometime soon"), testActor())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidDate.Code, appErr.Code)
	assert.Empty(t, repo.entries, "nothing should be written for an unusable date")
}

func TestPublicationServiceRepublishIsIdempotent(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	first, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)

	updated := driveSnapshot("act-1", "2025-04-15")
	updated.Name = "Campus Drive (rescheduled)"
	second, err := svc.Publish(context.Background(), updated, models.Actor{ID: "admin-2", Name: "Casey Admin"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "republish must reuse the existing entry")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "2025-04-15", second.Date)
	assert.Equal(t, "admin-2", second.PublishedBy)
	assert.Len(t, repo.entries, 1)
}

func TestPublicationServicePublishAfterUnpublishReactivates(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	first, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)

	result, err := svc.Unpublish(context.Background(), "act-1", testActor())
	require.NoError(t, err)
	assert.True(t, result.Success)

	second, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, repo.entries["act-1"].IsActive)
}

func TestPublicationServiceUnpublishMissingIsNotAnError(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	result, err := svc.Unpublish(context.Background(), "act-never-published", testActor())
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestPublicationServicePublishPropagatesStoreFailure(t *testing.T) {
	repo := newCalendarRepoStub()
	boom := errors.New("connection reset")
	repo.failAll = boom
	svc := NewPublicationService(repo, nil, nil, nil)

	_, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.ErrorIs(t, err, boom)
}

func TestPublicationServiceListActivePublicSortsAndDrops(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	for _, item := range []struct{ id, date string }{
		{"act-late", "2025-09-01"},
		{"act-early", "15/01/2025"},
		{"act-mid", "2025-05-20"},
	} {
		_, err := svc.Publish(context.Background(), driveSnapshot(item.id, item.date), testActor())
		require.NoError(t, err)
	}
	// Simulate a row written before canonical dates were enforced.
	repo.entries["act-legacy"] = &models.PublicCalendarEntry{
		ID: "entry-legacy", ActivityID: "act-legacy", Date: "whenever", IsActive: true,
	}

	entries, err := svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "act-early", entries[0].ActivityID)
	assert.Equal(t, "act-mid", entries[1].ActivityID)
	assert.Equal(t, "act-late", entries[2].ActivityID)
}

func TestPublicationServiceListActivePublicCachesResult(t *testing.T) {
	repo := newCalendarRepoStub()
	cache := newCalendarCacheStub()
	svc := NewPublicationService(repo, cache, nil, nil)

	_, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)

	first, err := svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	// A row slipped in behind the cache must stay invisible until invalidation.
	repo.entries["act-backdoor"] = &models.PublicCalendarEntry{
		ID: "entry-backdoor", ActivityID: "act-backdoor", Date: "2025-04-01", IsActive: true,
	}

	second, err := svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets)
}

func TestPublicationServiceMutationsInvalidateCachedCalendar(t *testing.T) {
	repo := newCalendarRepoStub()
	cache := newCalendarCacheStub()
	svc := NewPublicationService(repo, cache, nil, nil)

	_, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)
	_, err = svc.ListActivePublic(context.Background())
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), driveSnapshot("act-2", "2025-03-05"), testActor())
	require.NoError(t, err)
	entries, err := svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, err = svc.Unpublish(context.Background(), "act-1", testActor())
	require.NoError(t, err)
	entries, err = svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "act-2", entries[0].ActivityID)

	require.NoError(t, svc.DeleteByActivityID(context.Background(), "act-2"))
	entries, err = svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPublicationServiceUnpublishExcludesFromPublicList(t *testing.T) {
	repo := newCalendarRepoStub()
	svc := NewPublicationService(repo, nil, nil, nil)

	_, err := svc.Publish(context.Background(), driveSnapshot("act-1", "2025-03-02"), testActor())
	require.NoError(t, err)
	_, err = svc.Unpublish(context.Background(), "act-1", testActor())
	require.NoError(t, err)

	entries, err := svc.ListActivePublic(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The retracted entry is still readable through the admin lookup.
	entry, err := svc.GetByActivityID(context.Background(), "act-1")
	require.NoError(t, err)
	assert.False(t, entry.IsActive)
}
