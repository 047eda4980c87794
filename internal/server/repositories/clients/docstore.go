package clients

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// DocumentRepository stores clients in the clients collection.
type DocumentRepository struct {
	coll docstore.Collection[models.Client]
}

// NewDocumentRepository binds a repository to s, which may be a
// database or a transaction.
func NewDocumentRepository(s docstore.Store) *DocumentRepository {
	return &DocumentRepository{coll: docstore.NewCollection[models.Client](s, models.CollectionClients)}
}

// List returns at most limit clients in insertion order.
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]*models.Client, error) {
	return r.coll.Find(ctx, nil, limit)
}

// Get returns common.ErrorNotFound when no client has the id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"id": id})
}

// GetByEmail returns common.ErrorNotFound when no client uses email.
func (r *DocumentRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"email": email})
}

// Create inserts a new client. A duplicate unique key is
// common.ErrorConflict.
func (r *DocumentRepository) Create(ctx context.Context, c *models.Client) error {
	return r.coll.Insert(ctx, c)
}

// Update merges fields into the client with id and returns the number
// of documents changed.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return r.coll.UpdateOne(ctx, docstore.Filter{"id": id}, fields)
}

// Delete removes the client with id and returns the number of documents
// removed.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.coll.DeleteOne(ctx, docstore.Filter{"id": id})
}
