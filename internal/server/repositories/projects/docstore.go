package projects

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// DocumentRepository stores projects in the projects collection.
type DocumentRepository struct {
	coll docstore.Collection[models.Project]
}

// NewDocumentRepository binds a repository to s, which may be a
// database or a transaction.
func NewDocumentRepository(s docstore.Store) *DocumentRepository {
	return &DocumentRepository{coll: docstore.NewCollection[models.Project](s, models.CollectionProjects)}
}

// List returns at most limit projects in insertion order.
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]*models.Project, error) {
	return r.coll.Find(ctx, nil, limit)
}

// Get returns common.ErrorNotFound when no project has the id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"id": id})
}

// AnyForClient reports whether at least one project references clientID.
func (r *DocumentRepository) AnyForClient(ctx context.Context, clientID string) (bool, error) {
	found, err := r.coll.Find(ctx, docstore.Filter{"client_id": clientID}, 1)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Create inserts a new project. A duplicate unique key is
// common.ErrorConflict.
func (r *DocumentRepository) Create(ctx context.Context, p *models.Project) error {
	return r.coll.Insert(ctx, p)
}

// Update merges fields into the project with id and returns the number
// of documents changed.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return r.coll.UpdateOne(ctx, docstore.Filter{"id": id}, fields)
}

// Delete removes the project with id and returns the number of documents
// removed.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.coll.DeleteOne(ctx, docstore.Filter{"id": id})
}
