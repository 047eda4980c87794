// Package projects provides data access for project documents.
package projects

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Repository is the data access contract for projects.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	// AnyForClient reports whether at least one project references clientID.
	AnyForClient(ctx context.Context, clientID string) (bool, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
