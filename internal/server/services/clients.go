package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/server/shape"
	"github.com/dmitrijs2005/timekeeper/internal/server/validate"
)

// ClientService manages clients.
type ClientService struct {
	base
}

// NewClientService returns a ClientService over db.
func NewClientService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger) *ClientService {
	return &ClientService{base: newBase(db, repos, log, "clients")}
}

// List returns up to common.ResultCap clients in creation order.
func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	items, err := s.repos.Clients(s.db).List(ctx, common.ResultCap)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return shape.List(items, shape.Client), nil
}

// Get returns the client with id, or NotFound.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.repos.Clients(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgClientNotFound)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return shape.Client(c), nil
}

// Create validates in, rejects an email that is already taken and stores a
// new client.
func (s *ClientService) Create(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	if err := validate.ClientInput(in); err != nil {
		return nil, err
	}

	repo := s.repos.Clients(s.db)

	if err := s.emailFree(ctx, *in.Email, ""); err != nil {
		return nil, err
	}

	c := in.Build(s.newID(), s.timestamp())
	if err := repo.Create(ctx, c); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.Conflict(msgClientEmailTaken)
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	metrics.EntitiesCreated.WithLabelValues(metrics.KindClient).Inc()
	s.log.Info(ctx, "client created", "client_id", c.ID)
	return shape.Client(c), nil
}

// Update applies the fields present in patch and returns the stored
// result. Changing email to one held by another client is a Conflict.
func (s *ClientService) Update(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error) {
	if err := validate.ClientPatch(patch); err != nil {
		return nil, err
	}

	repo := s.repos.Clients(s.db)

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if email, ok := patch.Email.Get(); ok {
		if err := s.emailFree(ctx, email, id); err != nil {
			return nil, err
		}
	}

	fields := patch.Fields()
	fields["updated_at"] = s.timestamp()

	if _, err := repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.Conflict(msgClientEmailTaken)
		}
		return nil, fmt.Errorf("update client: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes a client. It fails with Conflict while projects still
// reference it.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	has, err := s.repos.Projects(s.db).AnyForClient(ctx, id)
	if err != nil {
		return fmt.Errorf("check client projects: %w", err)
	}
	if has {
		return common.Conflict(msgClientHasProjects)
	}

	if _, err := s.repos.Clients(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.log.Info(ctx, "client deleted", "client_id", id)
	return nil
}

// emailFree fails with Conflict when email belongs to a client other than
// selfID.
func (s *ClientService) emailFree(ctx context.Context, email, selfID string) error {
	other, err := s.repos.Clients(s.db).GetByEmail(ctx, email)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check client email: %w", err)
	case other.ID != selfID:
		return common.Conflict(msgClientEmailTaken)
	}
	return nil
}
