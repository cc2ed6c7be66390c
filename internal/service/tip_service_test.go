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

type tipRepoStub struct {
	tips    []models.Tip
	created []*models.Tip
	updated []*models.Tip
}

func (s *tipRepoStub) List(ctx context.Context, includeInactive bool) ([]models.Tip, error) {
	var out []models.Tip
	for _, tip := range s.tips {
		if !includeInactive && !tip.IsActive {
			continue
		}
		out = append(out, tip)
	}
	return out, nil
}

func (s *tipRepoStub) GetByID(ctx context.Context, id string) (*models.Tip, error) {
	for i := range s.tips {
		if s.tips[i].ID == id {
			return &s.tips[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *tipRepoStub) Create(ctx context.Context, tip *models.Tip) error {
	tip.ID = "tip-created"
	tip.IsActive = true
	s.created = append(s.created, tip)
	return nil
}

func (s *tipRepoStub) Update(ctx context.Context, tip *models.Tip) error {
	s.updated = append(s.updated, tip)
	return nil
}

func (s *tipRepoStub) SoftDelete(ctx context.Context, id string, at time.Time) error { return nil }

func TestTipServiceListActiveFiltersYear(t *testing.T) {
	repo := &tipRepoStub{tips: []models.Tip{
		{ID: "t1", Title: "Mock rounds", Year: intPtr(2025), IsActive: true},
		{ID: "t2", Title: "Resume basics", Year: intPtr(2024), IsActive: true},
		{ID: "t3", Title: "Unscoped", IsActive: true},
		{ID: "t4", Title: "Retired", Year: intPtr(2025)},
	}}
	svc := NewTipService(repo, nil, nil)

	tips, err := svc.ListActive(context.Background(), intPtr(2025))
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "t1", tips[0].ID)

	tips, err = svc.ListActive(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, tips, 3)
}

func TestTipServiceCreateStampsActor(t *testing.T) {
	repo := &tipRepoStub{}
	svc := NewTipService(repo, nil, nil)

	tip, err := svc.Create(context.Background(), CreateTipRequest{
		Title:   "  Ask about the team  ",
		Company: strPtr("Initech"),
	}, models.Actor{ID: "coord-1", Name: "Coordinator One"})
	require.NoError(t, err)
	assert.Equal(t, "Ask about the team", tip.Title)
	assert.Equal(t, "coord-1", tip.CreatedBy)
	require.Len(t, repo.created, 1)
}

func TestTipServiceRejectsWhitespaceTitle(t *testing.T) {
	repo := &tipRepoStub{tips: []models.Tip{
		{ID: "t1", Title: "Mock rounds", IsActive: true},
	}}
	svc := NewTipService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateTipRequest{Title: "   "}, models.Actor{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)

	_, err = svc.Update(context.Background(), "t1", UpdateTipRequest{Title: " \t ", IsActive: true}, models.Actor{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.updated)
}

func TestTipServiceUpdateMissingTip(t *testing.T) {
	svc := NewTipService(&tipRepoStub{}, nil, nil)

	_, err := svc.Update(context.Background(), "ghost", UpdateTipRequest{Title: "New title"}, models.Actor{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
