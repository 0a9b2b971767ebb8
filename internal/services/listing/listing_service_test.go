package listing_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okovalen/freelance-platform-api/internal/apperrors"
	"github.com/okovalen/freelance-platform-api/internal/services/listing"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func userRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "status", "rating"})
	for i, n := range names {
		rows.AddRow(i+1, n, n+"@example.com", "freelancer", "active", 4.0)
	}
	return rows
}

func TestListUsers_Defaults(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := listing.NewService(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY created_at DESC LIMIT`).
		WillReturnRows(userRows("Anna", "Borys"))

	res, err := svc.ListUsers(listing.UserQuery{})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	require.Equal(t, 1, res.Pagination.Page)
	require.Equal(t, 12, res.Pagination.Limit)
	require.Equal(t, int64(25), res.Pagination.Total)
	require.Equal(t, 3, res.Pagination.TotalPages)
	require.True(t, res.Pagination.HasNext)
	require.False(t, res.Pagination.HasPrev)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_FiltersAndSecondPage(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := listing.NewService(gdb)

	minRating := 4.0
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1 AND rating >= \$2`).
		WithArgs("freelancer", minRating).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 AND rating >= \$2 ORDER BY rating ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("freelancer", minRating, 10, 10).
		WillReturnRows(userRows("Clara"))

	res, err := svc.ListUsers(listing.UserQuery{
		Page:      2,
		Limit:     10,
		Role:      "freelancer",
		MinRating: &minRating,
		SortBy:    "rating",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Pagination.TotalPages)
	require.True(t, res.Pagination.HasNext)
	require.True(t, res.Pagination.HasPrev)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_SearchMatchesNameEmailBio(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := listing.NewService(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE \(name ILIKE \$1 OR email ILIKE \$2 OR bio ILIKE \$3\)`).
		WithArgs("%anna%", "%anna%", "%anna%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).
		WillReturnRows(userRows("Anna"))

	res, err := svc.ListUsers(listing.UserQuery{Search: "anna"})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Pagination.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_RejectsUnknownSortColumn(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := listing.NewService(gdb)

	_, err := svc.ListUsers(listing.UserQuery{SortBy: "password; DROP TABLE users"})
	require.ErrorIs(t, err, apperrors.ErrInvalidSort)
}

func TestListUsers_RejectsInvalidFilterValues(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := listing.NewService(gdb)

	_, err := svc.ListUsers(listing.UserQuery{Role: "superadmin"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	tooHigh := 7.5
	_, err = svc.ListUsers(listing.UserQuery{MinRating: &tooHigh})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.ListUsers(listing.UserQuery{Limit: 500})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
