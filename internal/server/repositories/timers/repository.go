// Package timers provides data access for the active timer singleton.
package timers

import (
	"context"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Repository is the data access contract for the active timer.
type Repository interface {
	// Active returns common.ErrorNotFound when no timer is running.
	Active(ctx context.Context) (*models.ActiveTimer, error)
	Create(ctx context.Context, t *models.ActiveTimer) error
	// Clear removes every stored timer.
	Clear(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
