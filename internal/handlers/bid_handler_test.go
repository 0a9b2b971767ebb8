package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okovalen/freelance-platform-api/internal/handlers"
)

func newBidApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	h := handlers.NewBidHandler(gdb)
	app := fiber.New()
	app.Patch("/bids/:id/status", h.UpdateStatus)
	return app, mock
}

func TestAcceptBid_LocksProjectAndRejectsSiblings(t *testing.T) {
	app, mock := newBidApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bids" WHERE id = \$1`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "freelancer_id", "status", "amount"}).
			AddRow(5, 2, 9, "pending", 1200.0))
	// the project row must be read under a row lock, anything less lets two
	// concurrent accepts both see an unassigned project
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status", "freelancer_id"}).
			AddRow(2, 1, "open", nil))
	mock.ExpectExec(`UPDATE "bids" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "bids" SET .* WHERE project_id = \$2 AND id <> \$3 AND status = \$4`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "projects" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("PATCH", "/bids/5/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptBid_ProjectAlreadyAssignedIsConflict(t *testing.T) {
	app, mock := newBidApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bids" WHERE id = \$1`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "freelancer_id", "status"}).
			AddRow(5, 2, 9, "pending"))
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status", "freelancer_id"}).
			AddRow(2, 1, "in_progress", 8))
	mock.ExpectRollback()

	req := httptest.NewRequest("PATCH", "/bids/5/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectBid_PlainStatusUpdate(t *testing.T) {
	app, mock := newBidApp(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bids" WHERE id = \$1`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "freelancer_id", "status"}).
			AddRow(5, 2, 9, "pending"))
	mock.ExpectExec(`UPDATE "bids" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("PATCH", "/bids/5/status", strings.NewReader(`{"status":"rejected"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBidStatus_UnknownStatusIs400(t *testing.T) {
	app, mock := newBidApp(t)

	req := httptest.NewRequest("PATCH", "/bids/5/status", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
