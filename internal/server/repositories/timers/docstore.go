package timers

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// DocumentRepository stores the running timer in the active_timers
// collection, which holds at most one document.
type DocumentRepository struct {
	coll docstore.Collection[models.ActiveTimer]
}

// NewDocumentRepository binds a repository to s, which may be a
// database or a transaction.
func NewDocumentRepository(s docstore.Store) *DocumentRepository {
	return &DocumentRepository{coll: docstore.NewCollection[models.ActiveTimer](s, models.CollectionActiveTimers)}
}

// Active returns the running timer, or common.ErrorNotFound when idle.
func (r *DocumentRepository) Active(ctx context.Context) (*models.ActiveTimer, error) {
	return r.coll.FindOne(ctx, nil)
}

// Create stores t. A second running timer is common.ErrorConflict.
func (r *DocumentRepository) Create(ctx context.Context, t *models.ActiveTimer) error {
	return r.coll.Insert(ctx, t)
}

// Clear removes any running timer.
func (r *DocumentRepository) Clear(ctx context.Context) (int64, error) {
	return r.coll.DeleteMany(ctx, nil)
}

// Delete removes the timer with id and returns the number of documents
// removed. Zero means another caller got there first.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.coll.DeleteOne(ctx, docstore.Filter{"id": id})
}
