// Package services implements the timekeeper business rules: validation,
// reference resolution, uniqueness checks and the timer state machine, on
// top of the document-store repositories.
package services

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/server/shape"
)

// Caller-facing messages.
const (
	msgClientNotFound     = "Client not found"
	msgProjectNotFound    = "Project not found"
	msgTimeEntryNotFound  = "Time entry not found"
	msgInvoiceNotFound    = "Invoice not found"
	msgNoActiveTimer      = "No active timer found"
	msgClientEmailTaken   = "Client with this email already exists"
	msgClientHasProjects  = "Cannot delete client with existing projects"
	msgProjectHasEntries  = "Cannot delete project with existing time entries"
	msgInvoiceNumberTaken = "Invoice number already exists"
	msgTimerRace          = "Another timer was started at the same time"
)

// base carries the collaborators shared by every service.
type base struct {
	db    docstore.Database
	repos repomanager.RepositoryManager
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

func newBase(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger, module string) base {
	if log == nil {
		log = logging.Nop{}
	}
	return base{
		db:    db,
		repos: repos,
		log:   log.With("module", module),
		now:   time.Now,
		newID: common.NewID,
	}
}

// timestamp is the current time as it will be persisted and reported.
func (b *base) timestamp() time.Time {
	return shape.Time(b.now())
}

// Services bundles every service over one database.
type Services struct {
	Clients     *ClientService
	Projects    *ProjectService
	TimeEntries *TimeEntryService
	Invoices    *InvoiceService
	Timer       *TimerService
	Export      *ExportService
}

// New wires all services. archiver may be nil, which disables archiving.
func New(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger, archiver Archiver) *Services {
	return &Services{
		Clients:     NewClientService(db, repos, log),
		Projects:    NewProjectService(db, repos, log),
		TimeEntries: NewTimeEntryService(db, repos, log),
		Invoices:    NewInvoiceService(db, repos, log),
		Timer:       NewTimerService(db, repos, log),
		Export:      NewExportService(db, repos, log, archiver),
	}
}
