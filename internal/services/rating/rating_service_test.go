package rating_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okovalen/freelance-platform-api/internal/apperrors"
	"github.com/okovalen/freelance-platform-api/internal/services/rating"
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

func TestRecompute_WritesAverageInOneTransaction(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := rating.NewService(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "rating"}).
			AddRow(7, "Anna", "freelancer", 0.0))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\) AS avg_rating, COUNT\(\*\) AS review_count`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating", "review_count"}).AddRow(4.0, 3))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Recompute(7)
	require.NoError(t, err)
	require.Equal(t, uint(7), res.UserID)
	require.Equal(t, 4.0, res.Rating)
	require.Equal(t, int64(3), res.ReviewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_RoundsToTwoDecimals(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := rating.NewService(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`FROM reviews`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating", "review_count"}).
			AddRow(4.333333333, 3))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Recompute(3)
	require.NoError(t, err)
	require.Equal(t, 4.33, res.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_UnknownUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := rating.NewService(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(404, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Recompute(404)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_RollsBackOnWriteFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := rating.NewService(gdb)

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`FROM reviews`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"avg_rating", "review_count"}).AddRow(4.0, 3))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := svc.Recompute(7)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
