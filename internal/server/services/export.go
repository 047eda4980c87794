package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/archive"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/server/shape"
)

const exportVersion = "1.0"

// Snapshot is a full data export.
type Snapshot struct {
	Clients     []*models.Client    `json:"clients"`
	Projects    []*models.Project   `json:"projects"`
	TimeEntries []*models.TimeEntry `json:"time_entries"`
	Invoices    []*models.Invoice   `json:"invoices"`
	ExportDate  time.Time           `json:"export_date"`
	Version     string              `json:"version"`
}

// Archiver stores a serialized snapshot and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, payload []byte, at time.Time) (*archive.Result, error)
}

// ExportService produces data snapshots and archives them.
type ExportService struct {
	base
	archiver Archiver
}

// NewExportService returns an ExportService. A nil archiver disables Archive.
func NewExportService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger, archiver Archiver) *ExportService {
	return &ExportService{base: newBase(db, repos, log, "export"), archiver: archiver}
}

// Snapshot reads every collection inside one transaction.
func (s *ExportService) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Version: exportVersion}

	err := s.db.RunInTx(ctx, func(ctx context.Context, tx docstore.Store) error {
		clients, err := s.repos.Clients(tx).List(ctx, common.ResultCap)
		if err != nil {
			return err
		}
		projects, err := s.repos.Projects(tx).List(ctx, common.ResultCap)
		if err != nil {
			return err
		}
		entries, err := s.repos.TimeEntries(tx).List(ctx, common.ResultCap)
		if err != nil {
			return err
		}
		invoices, err := s.repos.Invoices(tx).List(ctx, common.ResultCap)
		if err != nil {
			return err
		}

		snap.Clients = shape.List(clients, shape.Client)
		snap.Projects = shape.List(projects, shape.Project)
		snap.TimeEntries = shape.List(entries, shape.TimeEntry)
		snap.Invoices = shape.List(invoices, shape.Invoice)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	snap.ExportDate = s.timestamp()
	return snap, nil
}

// ArchiveEnabled reports whether an archiver is configured.
func (s *ExportService) ArchiveEnabled() bool { return s.archiver != nil }

// Archive uploads a fresh snapshot to object storage.
func (s *ExportService) Archive(ctx context.Context) (*archive.Result, error) {
	if s.archiver == nil {
		return nil, common.NotFound("Export archiving is not configured")
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	res, err := s.archiver.Archive(ctx, payload, snap.ExportDate)
	if err != nil {
		metrics.ExportArchives.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("archive snapshot: %w", err)
	}

	metrics.ExportArchives.WithLabelValues("ok").Inc()
	s.log.Info(ctx, "export archived", "key", res.Key, "bytes", len(payload))
	return res, nil
}
