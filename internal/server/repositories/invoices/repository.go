// Package invoices provides data access for invoice documents.
package invoices

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Repository is the data access contract for invoices.
type Repository interface {
	List(ctx context.Context, limit int) ([]*models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
