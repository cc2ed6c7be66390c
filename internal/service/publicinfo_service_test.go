package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type publicInfoRepoStub struct {
	items   []models.PublicInfoItem
	created []*models.PublicInfoItem
}

func (s *publicInfoRepoStub) List(ctx context.Context, filter models.PublicInfoFilter) ([]models.PublicInfoItem, error) {
	var out []models.PublicInfoItem
	for _, item := range s.items {
		if !filter.IncludeInactive && !item.IsActive {
			continue
		}
		if filter.Type != nil && item.Type != *filter.Type {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *publicInfoRepoStub) GetByID(ctx context.Context, id string) (*models.PublicInfoItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *publicInfoRepoStub) Create(ctx context.Context, item *models.PublicInfoItem) error {
	item.ID = "info-created"
	item.IsActive = true
	s.created = append(s.created, item)
	return nil
}

func (s *publicInfoRepoStub) Update(ctx context.Context, item *models.PublicInfoItem) error { return nil }

func (s *publicInfoRepoStub) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return nil
}

func TestPublicInfoServiceListVisibleAppliesWindow(t *testing.T) {
	repo := &publicInfoRepoStub{items: []models.PublicInfoItem{
		{ID: "open", Title: "Always on", Type: models.PublicInfoAnnouncement, IsActive: true},
		{ID: "windowed", Title: "This week", Type: models.PublicInfoAnnouncement, IsActive: true,
			StartDate: strPtr("2025-03-01"), EndDate: strPtr("2025-03-07")},
		{ID: "expired", Title: "Last month", Type: models.PublicInfoAnnouncement, IsActive: true,
			EndDate: strPtr("2025-02-01")},
		{ID: "future", Title: "Next month", Type: models.PublicInfoAnnouncement, IsActive: true,
			StartDate: strPtr("2025-04-01")},
		{ID: "inactive", Title: "Hidden", Type: models.PublicInfoAnnouncement},
	}}
	svc := NewPublicInfoService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC) }

	visible, err := svc.ListVisible(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "open", visible[0].ID)
	assert.Equal(t, "windowed", visible[1].ID)
}

func TestPublicInfoServiceListVisibleWindowIsInclusive(t *testing.T) {
	repo := &publicInfoRepoStub{items: []models.PublicInfoItem{
		{ID: "edge", Title: "Edge day", Type: models.PublicInfoAnnouncement, IsActive: true,
			StartDate: strPtr("2025-03-02"), EndDate: strPtr("2025-03-02")},
	}}
	svc := NewPublicInfoService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) }

	visible, err := svc.ListVisible(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, visible, 1)
}

func TestPublicInfoServiceCreateNormalizesWindowDates(t *testing.T) {
	repo := &publicInfoRepoStub{}
	svc := NewPublicInfoService(repo, nil, nil)

	item, err := svc.Create(context.Background(), CreatePublicInfoRequest{
		Title:     "Drive week",
		Type:      "announcement",
		StartDate: strPtr("02/03/2025"),
		EndDate:   strPtr("2025-03-07"),
	}, models.Actor{ID: "admin-1", Name: "Jordan Admin"})
	require.NoError(t, err)
	require.NotNil(t, item.StartDate)
	assert.Equal(t, "2025-03-02", *item.StartDate)
	assert.Equal(t, "admin-1", item.CreatedBy)
}

func TestPublicInfoServiceCreateRejectsBadWindow(t *testing.T) {
	svc := NewPublicInfoService(&publicInfoRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), CreatePublicInfoRequest{
		Title:     "Bad dates",
		Type:      "announcement",
		StartDate: strPtr("not a date"),
	}, models.Actor{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidDate.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreatePublicInfoRequest{
		Title:     "Inverted",
		Type:      "announcement",
		StartDate: strPtr("2025-03-07"),
		EndDate:   strPtr("2025-03-01"),
	}, models.Actor{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPublicInfoServiceRejectsWhitespaceTitle(t *testing.T) {
	repo := &publicInfoRepoStub{items: []models.PublicInfoItem{
		{ID: "info-1", Title: "Existing", Type: models.PublicInfoAnnouncement, IsActive: true},
	}}
	svc := NewPublicInfoService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreatePublicInfoRequest{
		Title: "   ",
		Type:  "announcement",
	}, models.Actor{ID: "admin-1", Name: "Jordan Admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)

	_, err = svc.Update(context.Background(), "info-1", UpdatePublicInfoRequest{
		Title:    "\t \n",
		Type:     "announcement",
		IsActive: true,
	}, models.Actor{ID: "admin-1", Name: "Jordan Admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPublicInfoServiceCreateTrimsTitle(t *testing.T) {
	repo := &publicInfoRepoStub{}
	svc := NewPublicInfoService(repo, nil, nil)

	item, err := svc.Create(context.Background(), CreatePublicInfoRequest{
		Title: "  Drive week  ",
		Type:  "announcement",
	}, models.Actor{ID: "admin-1", Name: "Jordan Admin"})
	require.NoError(t, err)
	assert.Equal(t, "Drive week", item.Title)
}

func TestPublicInfoServiceCreateDefaultsActor(t *testing.T) {
	repo := &publicInfoRepoStub{}
	svc := NewPublicInfoService(repo, nil, nil)

	item, err := svc.Create(context.Background(), CreatePublicInfoRequest{
		Title: "No actor",
		Type:  "faq",
	}, models.Actor{})
	require.NoError(t, err)
	assert.Equal(t, models.UnknownActorID, item.CreatedBy)
	assert.Equal(t, models.UnknownActorName, item.CreatedByName)
}
