package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func placementRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "company", "year", "role", "package_lpa", "stipend_per_month", "internship_duration_months", "internship_period", "visited_on", "hired_count", "students", "is_active", "created_at", "updated_at", "deleted_at"})
}

func TestPlacementRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO placements")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	role := "SDE"
	record := &models.PlacementRecord{
		Company: "Acme Corp",
		Year:    2025,
		Role:    &role,
		Students: models.StudentList{
			{Name: "A. Student"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), record))
	require.NotEmpty(t, record.ID)
	require.True(t, record.IsActive)

	rows := placementRows().
		AddRow(record.ID, "Acme Corp", 2025, "SDE", nil, nil, nil, nil, nil, nil, []byte(`[{"name":"A. Student"}]`), true, time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, company, year, role")).
		WithArgs(record.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", found.Company)
	require.Len(t, found.Students, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryListActiveExcludesFalseOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	rows := placementRows().
		AddRow("p-1", "Acme Corp", 2025, "SDE", nil, nil, nil, nil, nil, nil, []byte(`[]`), true, time.Now(), time.Now(), nil).
		AddRow("p-2", "Globex", 2025, "Analyst", nil, nil, nil, nil, nil, nil, []byte(`[]`), true, time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("is_active IS DISTINCT FROM FALSE")).
		WillReturnRows(rows)

	list, err := repo.ListActive(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositoryListActiveYearFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	year := 2024
	rows := placementRows().
		AddRow("p-1", "Initech", 2024, "SDE", nil, nil, nil, nil, nil, nil, []byte(`[]`), true, time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("AND year = $1")).
		WithArgs(year).
		WillReturnRows(rows)

	list, err := repo.ListActive(context.Background(), &year)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2024, list[0].Year)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlacementRepositorySoftDeleteAndActivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlacementRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE placements SET is_active = FALSE")).
		WithArgs("p-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SoftDelete(context.Background(), "p-1", now))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE placements SET is_active = TRUE")).
		WithArgs("p-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Activate(context.Background(), "p-1", now))
	require.NoError(t, mock.ExpectationsWereMet())
}
