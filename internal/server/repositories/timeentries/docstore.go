package timeentries

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// DocumentRepository stores time entries in the time_entries collection.
type DocumentRepository struct {
	coll docstore.Collection[models.TimeEntry]
}

// NewDocumentRepository binds a repository to s, which may be a
// database or a transaction.
func NewDocumentRepository(s docstore.Store) *DocumentRepository {
	return &DocumentRepository{coll: docstore.NewCollection[models.TimeEntry](s, models.CollectionTimeEntries)}
}

// List returns at most limit time entries in insertion order.
func (r *DocumentRepository) List(ctx context.Context, limit int) ([]*models.TimeEntry, error) {
	return r.coll.Find(ctx, nil, limit)
}

// Get returns common.ErrorNotFound when no time entry has the id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.TimeEntry, error) {
	return r.coll.FindOne(ctx, docstore.Filter{"id": id})
}

// AnyForProject reports whether at least one time entry references
// projectID.
func (r *DocumentRepository) AnyForProject(ctx context.Context, projectID string) (bool, error) {
	found, err := r.coll.Find(ctx, docstore.Filter{"project_id": projectID}, 1)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Create inserts a new time entry. A duplicate unique key is
// common.ErrorConflict.
func (r *DocumentRepository) Create(ctx context.Context, e *models.TimeEntry) error {
	return r.coll.Insert(ctx, e)
}

// Update merges fields into the time entry with id and returns the number
// of documents changed.
func (r *DocumentRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return r.coll.UpdateOne(ctx, docstore.Filter{"id": id}, fields)
}

// Delete removes the time entry with id and returns the number of documents
// removed.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.coll.DeleteOne(ctx, docstore.Filter{"id": id})
}
