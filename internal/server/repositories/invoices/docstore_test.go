package invoices

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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

func TestGetByNumber(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE doc->>'invoice_number' = \$1`).
		WithArgs("INV-1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"id":"i1","invoice_number":"INV-1","time_entries":["e1","e2"]}`)))

	inv, err := repo.GetByNumber(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, inv.TimeEntries)
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO invoices`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "invoices_number_idx"})

	err := repo.Create(context.Background(), &models.Invoice{ID: "i1", InvoiceNumber: "INV-1"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}
