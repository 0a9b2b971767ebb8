package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okovalen/freelance-platform-api/internal/handlers"
	"github.com/okovalen/freelance-platform-api/internal/services/schema"
)

func newProjectApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	h := handlers.NewProjectHandler(gdb, schema.NewService(gdb))
	app := fiber.New()
	app.Patch("/projects/:id/status", h.UpdateStatus)
	return app, mock
}

type projectTimestamps struct {
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func updateProjectStatus(t *testing.T, app *fiber.App, status string) (int, projectTimestamps) {
	t.Helper()
	req := httptest.NewRequest("PATCH", "/projects/3/status", strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body struct {
		Success bool              `json:"success"`
		Data    projectTimestamps `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Data
}

func expectProjectSave(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestUpdateProjectStatus_StartSetsStartedAt(t *testing.T) {
	app, mock := newProjectApp(t)

	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "client_id"}).
			AddRow(3, "CRM system", "open", 1))
	expectProjectSave(mock)

	code, data := updateProjectStatus(t, app, "in_progress")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "in_progress", data.Status)
	require.NotNil(t, data.StartedAt)
	require.Nil(t, data.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectStatus_CompleteSetsCompletedAt(t *testing.T) {
	app, mock := newProjectApp(t)

	started := time.Now().AddDate(0, 0, -14)
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "client_id", "started_at"}).
			AddRow(3, "CRM system", "in_progress", 1, started))
	expectProjectSave(mock)

	code, data := updateProjectStatus(t, app, "completed")
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, data.StartedAt)
	require.NotNil(t, data.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectStatus_ReopenClearsTimestamps(t *testing.T) {
	app, mock := newProjectApp(t)

	started := time.Now().AddDate(0, 0, -14)
	completed := time.Now().AddDate(0, 0, -2)
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "client_id", "started_at", "completed_at"}).
			AddRow(3, "CRM system", "completed", 1, started, completed))
	expectProjectSave(mock)

	code, data := updateProjectStatus(t, app, "open")
	require.Equal(t, fiber.StatusOK, code)
	require.Equal(t, "open", data.Status)
	require.Nil(t, data.StartedAt)
	require.Nil(t, data.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectStatus_UnknownStatusIs400(t *testing.T) {
	app, mock := newProjectApp(t)

	code, _ := updateProjectStatus(t, app, "paused")
	require.Equal(t, fiber.StatusBadRequest, code)
	require.NoError(t, mock.ExpectationsWereMet())
}
