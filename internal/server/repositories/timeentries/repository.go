// Package timeentries provides data access for time entry documents.
package timeentries

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Repository is the data access contract for time entries.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.TimeEntry, error)
	Get(ctx context.Context, id string) (*models.TimeEntry, error)
	AnyForProject(ctx context.Context, projectID string) (bool, error)
	Create(ctx context.Context, e *models.TimeEntry) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
