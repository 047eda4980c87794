package clients

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDocumentRepository(docstore.NewPostgres(db)), mock
}

func TestGet_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id":"c1","name":"Acme","email":"a@b.co","phone":null,"address":null,"is_active":true,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`))
	mock.ExpectQuery(`^SELECT doc FROM clients WHERE doc->>'id' = \$1 ORDER BY seq LIMIT 1$`).
		WithArgs("c1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.True(t, got.IsActive)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT doc FROM clients`).WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE doc->>'email' = \$1`).
		WithArgs("a@b.co").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"id":"c1","email":"a@b.co"}`)))

	got, err := repo.GetByEmail(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO clients`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Client{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT doc FROM clients ORDER BY seq LIMIT 1000$`).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"id":"c1"}`)).AddRow([]byte(`{"id":"c2"}`)))

	got, err := repo.List(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[1].ID)
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE clients SET doc = doc \|\| \$1::jsonb`).
		WithArgs(`{"name":"New"}`, "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM clients`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Update(context.Background(), "c1", map[string]any{"name": "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
