package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
)

func publicInfoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "type", "url", "category", "is_active", "start_date", "end_date", "created_by", "created_by_name", "last_updated_by", "last_updated_by_name", "created_at", "updated_at", "deleted_at"})
}

func TestPublicInfoRepositoryListTypeFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicInfoRepository(db)
	rows := publicInfoRows().
		AddRow("info-1", "Resume workshop", nil, "announcement", nil, nil, true, nil, nil, "admin-1", "Jordan Admin", nil, nil, time.Now(), time.Now(), nil)
	infoType := models.PublicInfoAnnouncement
	mock.ExpectQuery(regexp.QuoteMeta("AND type = $1")).
		WithArgs(infoType).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.PublicInfoFilter{Type: &infoType})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Resume workshop", items[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicInfoRepositoryCreateStampsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicInfoRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public_info")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.PublicInfoItem{
		Title:         "Placement portal link",
		Type:          models.PublicInfoLink,
		CreatedBy:     "admin-1",
		CreatedByName: "Jordan Admin",
	}
	require.NoError(t, repo.Create(context.Background(), item))
	require.NotEmpty(t, item.ID)
	require.True(t, item.IsActive)
	require.False(t, item.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicInfoRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicInfoRepository(db)
	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE public_info SET is_active = FALSE")).
		WithArgs("info-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SoftDelete(context.Background(), "info-1", now))
	require.NoError(t, mock.ExpectationsWereMet())
}
