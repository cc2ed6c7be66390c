package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
)

func calendarRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "activity_id", "company", "activity_name", "activity_type", "date", "time", "mode", "location", "is_active", "published_by", "published_by_name", "unpublished_by", "unpublished_by_name", "unpublished_at", "created_at", "updated_at"})
}

func TestPublicCalendarRepositoryUpsertPreservesCreatedAt(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicCalendarRepository(db)
	firstPublish := time.Now().UTC().Add(-time.Hour)

	// The conflict arm keeps the original row id and created_at.
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (activity_id) DO UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("entry-1", firstPublish))

	entry := &models.PublicCalendarEntry{
		ActivityID:      "act-1",
		Company:         "Acme Corp",
		ActivityName:    "Campus Drive",
		ActivityType:    "drive",
		Date:            "2025-03-02",
		PublishedBy:     "admin-1",
		PublishedByName: "Jordan Admin",
	}
	require.NoError(t, repo.Upsert(context.Background(), entry))
	require.Equal(t, "entry-1", entry.ID)
	require.Equal(t, firstPublish, entry.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicCalendarRepositoryGetByActivityID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicCalendarRepository(db)
	rows := calendarRows().
		AddRow("entry-1", "act-1", "Acme Corp", "Campus Drive", "drive", "2025-03-02", nil, nil, nil, true, "admin-1", "Jordan Admin", nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC LIMIT 1")).
		WithArgs("act-1").
		WillReturnRows(rows)

	entry, err := repo.GetByActivityID(context.Background(), "act-1")
	require.NoError(t, err)
	require.Equal(t, "entry-1", entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC LIMIT 1")).
		WithArgs("act-missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByActivityID(context.Background(), "act-missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPublicCalendarRepositoryRetractReportsRowCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicCalendarRepository(db)
	actor := models.Actor{ID: "admin-1", Name: "Jordan Admin"}
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE public_activities SET is_active = FALSE")).
		WithArgs("act-1", actor.ID, actor.Name, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	affected, err := repo.Retract(context.Background(), "act-1", actor, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE public_activities SET is_active = FALSE")).
		WithArgs("act-missing", actor.ID, actor.Name, now).
		WillReturnResult(sqlmock.NewResult(0, 0))
	affected, err = repo.Retract(context.Background(), "act-missing", actor, now)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicCalendarRepositoryDeleteByActivityID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPublicCalendarRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM public_activities WHERE activity_id = $1")).
		WithArgs("act-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteByActivityID(context.Background(), "act-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
