package invoices

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// DocumentRepository stores invoices in the invoices collection.
type DocumentRepository struct {
	coll docstore.Collection[models.Invoice]
}

// NewDocumentRepository binds a repository to s, which may be a
// database or a transaction.
func NewDocumentRepository(s docstore.Store) *DocumentRepository {
	return &DocumentRepository{coll: docstore.NewCollection[models.Invoice](s, models.CollectionInvoices)}
}

// List returns at most limit invoices in insertion order.
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]*models.Invoice, error) {
	return r.coll.Find(ctx, nil, limit)
}

// Get returns common.ErrorNotFound when no invoice has the id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"id": id})
}

// GetByNumber returns common.ErrorNotFound when no invoice has number.
func (r *DocumentRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"invoice_number": number})
}

// Create inserts a new invoice. A duplicate unique key is
// common.ErrorConflict.
func (r *DocumentRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return r.coll.Insert(ctx, inv)
}

// Update merges fields into the invoice with id and returns the number
// of documents changed.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return r.coll.UpdateOne(ctx, docstore.Filter{"id": id}, fields)
}

// Delete removes the invoice with id and returns the number of documents
// removed.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.coll.DeleteOne(ctx, docstore.Filter{"id": id})
}
