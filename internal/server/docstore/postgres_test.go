package docstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

func TestPostgres_Insert(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectExec(`^INSERT INTO clients \(doc\) VALUES \(\$1::jsonb\)$`).
		WithArgs(`{"id":"c1"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, p.Insert(context.Background(), "clients", map[string]string{"id": "c1"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_UniqueViolation(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT INTO clients`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "clients_email_idx"})

	err := p.Insert(context.Background(), "clients", map[string]string{"id": "c1"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestPostgres_Insert_UnknownCollection(t *testing.T) {
	p, _ := newPostgresWithMock(t)
	assert.Error(t, p.Insert(context.Background(), "users", map[string]string{}))
}

func TestPostgres_Find(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id":"p1"}`)).
		AddRow([]byte(`{"id":"p2"}`))
	mock.ExpectQuery(`^SELECT doc FROM projects WHERE doc->>'client_id' = \$1 ORDER BY seq LIMIT 1000$`).
		WithArgs("c1").
		WillReturnRows(rows)

	docs, err := p.Find(context.Background(), "projects", Filter{"client_id": "c1"}, 1000)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"id":"p2"}`, string(docs[1]))
}

func TestPostgres_Find_Empty(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`^SELECT doc FROM invoices ORDER BY seq LIMIT 1000$`).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	docs, err := p.Find(context.Background(), "invoices", nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestPostgres_FindOne_NotFound(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`^SELECT doc FROM clients WHERE doc->>'id' = \$1 ORDER BY seq LIMIT 1$`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := p.FindOne(context.Background(), "clients", Filter{"id": "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_FindOne_DBError(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT doc FROM clients`).WillReturnError(errors.New("db down"))

	_, err := p.FindOne(context.Background(), "clients", Filter{"id": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_UpdateOne(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE clients SET doc = doc \|\| \$1::jsonb\s+WHERE seq = \(SELECT seq FROM clients WHERE doc->>'id' = \$2 ORDER BY seq LIMIT 1\)$`).
		WithArgs(`{"phone":null}`, "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := p.UpdateOne(context.Background(), "clients", Filter{"id": "c1"}, map[string]any{"phone": nil})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostgres_DeleteOne(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectExec(`(?s)^DELETE FROM time_entries\s+WHERE seq = \(SELECT seq FROM time_entries WHERE doc->>'id' = \$1 ORDER BY seq LIMIT 1\)$`).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := p.DeleteOne(context.Background(), "time_entries", Filter{"id": "e1"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_DeleteMany(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectExec(`^DELETE FROM active_timers$`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := p.DeleteMany(context.Background(), "active_timers", Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPostgres_RunInTx_Commit(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE FROM active_timers$`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^INSERT INTO active_timers`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := p.RunInTx(context.Background(), func(ctx context.Context, s Store) error {
		if _, err := s.DeleteMany(ctx, "active_timers", nil); err != nil {
			return err
		}
		return s.Insert(ctx, "active_timers", map[string]string{"id": "t1"})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RunInTx_Rollback(t *testing.T) {
	p, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := p.RunInTx(context.Background(), func(ctx context.Context, s Store) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	p, _ := newPostgresWithMock(t)

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, p.Migrate(context.Background()))
	assert.Equal(t, "postgres", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, p.Migrate(context.Background()), "boom")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.Error(t, err)
}
