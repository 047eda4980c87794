package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/server/shape"
	"github.com/dmitrijs2005/timekeeper/internal/server/validate"
)

// TimeEntryService manages time entries.
type TimeEntryService struct {
	base
	resolver *Resolver
}

// NewTimeEntryService returns a TimeEntryService over db.
func NewTimeEntryService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger) *TimeEntryService {
	return &TimeEntryService{
		base:     newBase(db, repos, log, "time_entries"),
		resolver: NewResolver(db, repos),
	}
}

// List returns up to common.ResultCap time entries in creation order.
func (s *TimeEntryService) List(ctx context.Context) ([]*models.TimeEntry, error) {
	items, err := s.repos.TimeEntries(s.db).List(ctx, common.ResultCap)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return shape.List(items, shape.TimeEntry), nil
}

// Get returns the time entry with id, or NotFound.
func (s *TimeEntryService) Get(ctx context.Context, id string) (*models.TimeEntry, error) {
	e, err := s.repos.TimeEntries(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgTimeEntryNotFound)
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return shape.TimeEntry(e), nil
}

// Create validates in, resolves the project and stores a manual time
// entry. Start and end times are stored in UTC.
func (s *TimeEntryService) Create(ctx context.Context, in models.TimeEntryInput) (*models.TimeEntry, error) {
	if err := validate.TimeEntryInput(in); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Project(ctx, *in.ProjectID); err != nil {
		return nil, err
	}

	in.StartTime = shape.TimePtr(in.StartTime)
	in.EndTime = shape.TimePtr(in.EndTime)
	e := in.Build(s.newID(), s.timestamp())

	if err := s.repos.TimeEntries(s.db).Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}

	metrics.EntitiesCreated.WithLabelValues(metrics.KindTimeEntry).Inc()
	s.log.Info(ctx, "time entry created", "time_entry_id", e.ID, "project_id", e.ProjectID)
	return shape.TimeEntry(e), nil
}

// Update applies the fields present in patch. A new project_id must
// reference an existing project.
func (s *TimeEntryService) Update(ctx context.Context, id string, patch models.TimeEntryPatch) (*models.TimeEntry, error) {
	if err := validate.TimeEntryPatch(patch); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if projectID, ok := patch.ProjectID.Get(); ok {
		if _, err := s.resolver.Project(ctx, projectID); err != nil {
			return nil, err
		}
	}

	fields := patch.Fields()
	for _, k := range []string{"start_time", "end_time"} {
		if t, ok := fields[k].(time.Time); ok {
			fields[k] = shape.Time(t)
		}
	}
	fields["updated_at"] = s.timestamp()

	if _, err := s.repos.TimeEntries(s.db).Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update time entry: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a time entry.
func (s *TimeEntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.repos.TimeEntries(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	s.log.Info(ctx, "time entry deleted", "time_entry_id", id)
	return nil
}
