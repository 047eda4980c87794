package services

import (
	"context"
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

// ProjectService manages projects.
type ProjectService struct {
	base
	resolver *Resolver
}

// NewProjectService returns a ProjectService over db.
func NewProjectService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger) *ProjectService {
	return &ProjectService{
		base:     newBase(db, repos, log, "projects"),
		resolver: NewResolver(db, repos),
	}
}

// List returns up to common.ResultCap projects in creation order.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	items, err := s.repos.Projects(s.db).List(ctx, common.ResultCap)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return shape.List(items, shape.Project), nil
}

// Get returns the project with id, or NotFound.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.resolver.Project(ctx, id)
	if err != nil {
		return nil, err
	}
	return shape.Project(p), nil
}

// Create validates in, resolves the owning client and stores a new
// project.
func (s *ProjectService) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	if err := validate.ProjectInput(in); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Client(ctx, *in.ClientID); err != nil {
		return nil, err
	}

	p := in.Build(s.newID(), s.timestamp())
	if err := s.repos.Projects(s.db).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	metrics.EntitiesCreated.WithLabelValues(metrics.KindProject).Inc()
	s.log.Info(ctx, "project created", "project_id", p.ID, "client_id", p.ClientID)
	return shape.Project(p), nil
}

// Update applies the fields present in patch. A new client_id must
// reference an existing client.
func (s *ProjectService) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if err := validate.ProjectPatch(patch); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Project(ctx, id); err != nil {
		return nil, err
	}
	if clientID, ok := patch.ClientID.Get(); ok {
		if _, err := s.resolver.Client(ctx, clientID); err != nil {
			return nil, err
		}
	}

	fields := patch.Fields()
	fields["updated_at"] = s.timestamp()

	if _, err := s.repos.Projects(s.db).Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a project. It fails with Conflict while time entries
// still reference it.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.resolver.Project(ctx, id); err != nil {
		return err
	}

	has, err := s.repos.TimeEntries(s.db).AnyForProject(ctx, id)
	if err != nil {
		return fmt.Errorf("check project time entries: %w", err)
	}
	if has {
		return common.Conflict(msgProjectHasEntries)
	}

	if _, err := s.repos.Projects(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.Info(ctx, "project deleted", "project_id", id)
	return nil
}

