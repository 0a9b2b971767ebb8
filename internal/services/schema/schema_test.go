package schema

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

func TestObjectsCatalog(t *testing.T) {
	objs := Objects()
	require.NotEmpty(t, objs)

	seen := map[string]bool{}
	for _, o := range objs {
		require.NotEmpty(t, o.Name)
		require.NotEmpty(t, o.Create, "%s has no create statements", o.Name)
		require.False(t, seen[o.Name], "duplicate object %s", o.Name)
		seen[o.Name] = true

		switch o.Kind {
		case KindTable:
			// audit tables are append-only and must never be dropped
			require.Empty(t, o.Drop, "%s must not carry drop statements", o.Name)
		case KindView, KindRoutine, KindTrigger:
			require.NotEmpty(t, o.Drop, "%s must be droppable for reconciliation", o.Name)
		default:
			t.Fatalf("unknown kind %q for %s", o.Kind, o.Name)
		}
	}

	for _, name := range []string{
		"project_status_log", "bid_status_log",
		"recompute_user_rating", "project_statistics",
		"client_avg_budget", "freelancer_success_rate",
		"v_active_projects", "v_top_freelancers", "v_client_stats",
		"trg_projects_count_insert", "trg_projects_status_log", "trg_bids_status_log",
	} {
		require.True(t, seen[name], "catalog is missing %s", name)
	}
}

func TestReconcile_DropsBeforeCreating(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb)

	obj := DerivedObject{
		Kind:   KindView,
		Name:   "v_test",
		Drop:   []string{"DROP VIEW IF EXISTS v_test"},
		Create: []string{"CREATE VIEW v_test AS SELECT 1"},
	}

	mock.ExpectExec(`DROP VIEW IF EXISTS v_test`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE VIEW v_test AS SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.reconcile(obj))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetup_AllObjectsInstalled(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb)

	for _, obj := range Objects() {
		for range append(obj.Drop, obj.Create...) {
			mock.ExpectExec(`.*`).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	report := svc.Setup()
	require.True(t, report.OK())
	require.Len(t, report.Created, len(Objects()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetup_ContinuesPastFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewService(gdb)

	objs := Objects()
	boom := errors.New("permission denied")

	// first statement of the first object fails, everything else succeeds
	mock.ExpectExec(`.*`).WillReturnError(boom)
	for _, obj := range objs[1:] {
		for range append(obj.Drop, obj.Create...) {
			mock.ExpectExec(`.*`).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	report := svc.Setup()
	require.False(t, report.OK())
	require.Len(t, report.Failed, 1)
	require.Equal(t, objs[0].Name, report.Failed[0].Name)
	require.Len(t, report.Created, len(objs)-1)
	require.NoError(t, mock.ExpectationsWereMet())
}
