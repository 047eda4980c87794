// Package repomanager vends data-access repositories bound to a document
// store handle: the database itself or a transaction opened on it.
package repomanager

import (
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/clients"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/invoices"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/projects"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/timeentries"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/timers"
)

// RepositoryManager returns repositories bound to a store handle.
type RepositoryManager interface {
	Clients(s docstore.Store) clients.Repository
	Projects(s docstore.Store) projects.Repository
	TimeEntries(s docstore.Store) timeentries.Repository
	Invoices(s docstore.Store) invoices.Repository
	Timers(s docstore.Store) timers.Repository
}

// DocumentRepositoryManager vends document-store backed repositories.
type DocumentRepositoryManager struct{}

// NewDocumentRepositoryManager returns the document-store manager.
func NewDocumentRepositoryManager() RepositoryManager {
	return &DocumentRepositoryManager{}
}

// Clients returns the client repository over s.
func (m *DocumentRepositoryManager) Clients(s docstore.Store) clients.Repository {
	return clients.NewDocumentRepository(s)
}

// Projects returns the project repository over s.
func (m *DocumentRepositoryManager) Projects(s docstore.Store) projects.Repository {
	return projects.NewDocumentRepository(s)
}

// TimeEntries returns the time entry repository over s.
func (m *DocumentRepositoryManager) TimeEntries(s docstore.Store) timeentries.Repository {
	return timeentries.NewDocumentRepository(s)
}

// Invoices returns the invoice repository over s.
func (m *DocumentRepositoryManager) Invoices(s docstore.Store) invoices.Repository {
	return invoices.NewDocumentRepository(s)
}

// Timers returns the active timer repository over s.
func (m *DocumentRepositoryManager) Timers(s docstore.Store) timers.Repository {
	return timers.NewDocumentRepository(s)
}
