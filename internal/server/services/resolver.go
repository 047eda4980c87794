package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
)

// Resolver checks that referenced clients and projects exist. Every call
// reads the store; nothing is cached.
type Resolver struct {
	store docstore.Store
	repos repomanager.RepositoryManager
}

// NewResolver returns a Resolver reading through store.
func NewResolver(store docstore.Store, repos repomanager.RepositoryManager) *Resolver {
	return &Resolver{store: store, repos: repos}
}

// Client returns the client with id, or NotFound("Client not found").
func (r *Resolver) Client(ctx context.Context, id string) (*models.Client, error) {
	c, err := r.repos.Clients(r.store).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgClientNotFound)
		}
		return nil, fmt.Errorf("resolve client: %w", err)
	}
	return c, nil
}

// Project returns the project with id, or NotFound("Project not found").
func (r *Resolver) Project(ctx context.Context, id string) (*models.Project, error) {
	p, err := r.repos.Projects(r.store).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgProjectNotFound)
		}
		return nil, fmt.Errorf("resolve project: %w", err)
	}
	return p, nil
}
