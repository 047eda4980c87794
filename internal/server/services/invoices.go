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

// InvoiceService manages invoices.
type InvoiceService struct {
	base
	resolver *Resolver
}

// NewInvoiceService returns a InvoiceService over db.
func NewInvoiceService(db docstore.Database, repos repomanager.RepositoryManager, log logging.Logger) *InvoiceService {
	return &InvoiceService{
		base:     newBase(db, repos, log, "invoices"),
		resolver: NewResolver(db, repos),
	}
}

// List returns up to common.ResultCap invoices in creation order.
func (s *InvoiceService) List(ctx context.Context) ([]*models.Invoice, error) {
	items, err := s.repos.Invoices(s.db).List(ctx, common.ResultCap)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return shape.List(items, shape.Invoice), nil
}

// Get returns the invoice with id, or NotFound.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := s.repos.Invoices(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(msgInvoiceNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return shape.Invoice(inv), nil
}

// Create validates in, resolves the client and then the project, checks
// that the invoice number is unused and stores a new invoice.
func (s *InvoiceService) Create(ctx context.Context, in models.InvoiceInput) (*models.Invoice, error) {
	if err := validate.InvoiceInput(in); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Client(ctx, *in.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Project(ctx, *in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.numberFree(ctx, *in.InvoiceNumber, ""); err != nil {
		return nil, err
	}

	inv := in.Build(s.newID(), s.timestamp())
	if err := s.repos.Invoices(s.db).Create(ctx, inv); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.Conflict(msgInvoiceNumberTaken)
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	metrics.EntitiesCreated.WithLabelValues(metrics.KindInvoice).Inc()
	s.log.Info(ctx, "invoice created", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)
	return shape.Invoice(inv), nil
}

// Update applies the fields present in patch. Present client_id and
// project_id values must resolve, and a new invoice number must be unused.
func (s *InvoiceService) Update(ctx context.Context, id string, patch models.InvoicePatch) (*models.Invoice, error) {
	if err := validate.InvoicePatch(patch); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if clientID, ok := patch.ClientID.Get(); ok {
		if _, err := s.resolver.Client(ctx, clientID); err != nil {
			return nil, err
		}
	}
	if projectID, ok := patch.ProjectID.Get(); ok {
		if _, err := s.resolver.Project(ctx, projectID); err != nil {
			return nil, err
		}
	}
	if number, ok := patch.InvoiceNumber.Get(); ok {
		if err := s.numberFree(ctx, number, id); err != nil {
			return nil, err
		}
	}

	fields := patch.Fields()
	fields["updated_at"] = s.timestamp()

	if _, err := s.repos.Invoices(s.db).Update(ctx, id, fields); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.Conflict(msgInvoiceNumberTaken)
		}
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes an invoice.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.repos.Invoices(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	s.log.Info(ctx, "invoice deleted", "invoice_id", id)
	return nil
}

func (s *InvoiceService) numberFree(ctx context.Context, number, selfID string) error {
	other, err := s.repos.Invoices(s.db).GetByNumber(ctx, number)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check invoice number: %w", err)
	case other.ID != selfID:
		return common.Conflict(msgInvoiceNumberTaken)
	}
	return nil
}
