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

// TimerService drives the single active timer: Idle when no timer is
// stored, Running otherwise.
type TimerService struct {
	base
	resolver *Resolver
}

// NewTimerService returns a TimerService over db.
func NewTimerService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger) *TimerService {
	return &TimerService{
		base:     newBase(db, repos, log, "timer"),
		resolver: NewResolver(db, repos),
	}
}

// Active returns the running timer, or nil when Idle.
func (s *TimerService) Active(ctx context.Context) (*models.ActiveTimer, error) {
	t, err := s.repos.Timers(s.db).Active(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active timer: %w", err)
	}
	return shape.Timer(t), nil
}

// Start replaces any running timer with a new one for the given project.
func (s *TimerService) Start(ctx context.Context, in models.TimerStartInput) (*models.ActiveTimer, error) {
	if err := validate.TimerStart(in); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Project(ctx, *in.ProjectID); err != nil {
		return nil, err
	}

	t := in.Build(s.newID(), s.timestamp())

	err := s.db.RunInTx(ctx, func(ctx context.Context, tx docstore.Store) error {
		repo := s.repos.Timers(tx)
		if _, err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Create(ctx, t)
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.Conflict(msgTimerRace)
		}
		return nil, fmt.Errorf("start timer: %w", err)
	}

	metrics.TimerRunning.Set(1)
	metrics.EntitiesCreated.WithLabelValues(metrics.KindTimer).Inc()
	s.log.Info(ctx, "timer started", "timer_id", t.ID, "project_id", t.ProjectID)
	return shape.Timer(t), nil
}

// Stop converts the running timer into a non-manual time entry.
func (s *TimerService) Stop(ctx context.Context) (*models.TimeEntry, error) {
	var entry *models.TimeEntry

	err := s.db.RunInTx(ctx, func(ctx context.Context, tx docstore.Store) error {
		timers := s.repos.Timers(tx)

		t, err := timers.Active(ctx)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.NotFound(msgNoActiveTimer)
			}
			return err
		}

		end := s.timestamp()
		start := shape.Time(t.StartTime)
		e := &models.TimeEntry{
			ID:          s.newID(),
			ProjectID:   t.ProjectID,
			Description: t.Description,
			StartTime:   &start,
			EndTime:     &end,
			Duration:    elapsedMinutes(start, end),
			Date:        start.Format(common.DateLayout),
			IsManual:    false,
			CreatedAt:   end,
			UpdatedAt:   end,
		}
		if err := s.repos.TimeEntries(tx).Create(ctx, e); err != nil {
			return err
		}
		// Zero rows means a concurrent stop already consumed this timer;
		// returning an error rolls back the entry created above.
		n, err := timers.Delete(ctx, t.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return common.NotFound(msgNoActiveTimer)
		}
		entry = e
		return nil
	})
	if err != nil {
		var ce *common.Error
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, fmt.Errorf("stop timer: %w", err)
	}

	metrics.TimerRunning.Set(0)
	metrics.TimerStops.Inc()
	metrics.EntitiesCreated.WithLabelValues(metrics.KindTimeEntry).Inc()
	s.log.Info(ctx, "timer stopped", "time_entry_id", entry.ID, "duration", entry.Duration)
	return shape.TimeEntry(entry), nil
}

// elapsedMinutes is the whole number of minutes between start and end,
// never less than one.
func elapsedMinutes(start, end time.Time) int {
	m := int(end.Sub(start).Seconds() / 60)
	if m < 1 {
		return 1
	}
	return m
}
