// Package clients provides data access for client documents.
package clients

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Repository is the data access contract for clients.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
