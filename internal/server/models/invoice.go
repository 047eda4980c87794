package models

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/optional"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

var InvoiceStatuses = []InvoiceStatus{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue}

type Invoice struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ProjectID     string          `json:"project_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	// TimeEntries references time entries by id; they are not checked for
	// existence and are kept as an ordered snapshot.
	TimeEntries       []string  `json:"time_entries"`
	CustomDescription *string   `json:"custom_description"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type InvoiceInput struct {
	ClientID          *string          `json:"client_id"`
	ProjectID         *string          `json:"project_id"`
	InvoiceNumber     *string          `json:"invoice_number"`
	IssueDate         *string          `json:"issue_date"`
	DueDate           *string          `json:"due_date"`
	TotalHours        *decimal.Decimal `json:"total_hours"`
	TotalAmount       *decimal.Decimal `json:"total_amount"`
	Currency          *string          `json:"currency"`
	Status            *InvoiceStatus   `json:"status"`
	TimeEntries       []string         `json:"time_entries"`
	CustomDescription *string          `json:"custom_description"`
}

func (in InvoiceInput) Build(id string, now time.Time) *Invoice {
	entries := in.TimeEntries
	if entries == nil {
		entries = []string{}
	}
	return &Invoice{
		ID:                id,
		ClientID:          deref(in.ClientID, ""),
		ProjectID:         deref(in.ProjectID, ""),
		InvoiceNumber:     deref(in.InvoiceNumber, ""),
		IssueDate:         deref(in.IssueDate, ""),
		DueDate:           deref(in.DueDate, ""),
		TotalHours:        deref(in.TotalHours, decimal.Zero),
		TotalAmount:       deref(in.TotalAmount, decimal.Zero),
		Currency:          deref(in.Currency, common.DefaultCurrency),
		Status:            deref(in.Status, InvoiceDraft),
		TimeEntries:       entries,
		CustomDescription: in.CustomDescription,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

type InvoicePatch struct {
	ClientID          optional.Value[string]          `json:"client_id"`
	ProjectID         optional.Value[string]          `json:"project_id"`
	InvoiceNumber     optional.Value[string]          `json:"invoice_number"`
	IssueDate         optional.Value[string]          `json:"issue_date"`
	DueDate           optional.Value[string]          `json:"due_date"`
	TotalHours        optional.Value[decimal.Decimal] `json:"total_hours"`
	TotalAmount       optional.Value[decimal.Decimal] `json:"total_amount"`
	Currency          optional.Value[string]          `json:"currency"`
	Status            optional.Value[InvoiceStatus]   `json:"status"`
	TimeEntries       optional.Value[[]string]        `json:"time_entries"`
	CustomDescription optional.Value[string]          `json:"custom_description"`
}

func (p InvoicePatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "client_id", p.ClientID)
	put(f, "project_id", p.ProjectID)
	put(f, "invoice_number", p.InvoiceNumber)
	put(f, "issue_date", p.IssueDate)
	put(f, "due_date", p.DueDate)
	put(f, "total_hours", p.TotalHours)
	put(f, "total_amount", p.TotalAmount)
	put(f, "currency", p.Currency)
	put(f, "status", p.Status)
	put(f, "time_entries", p.TimeEntries)
	put(f, "custom_description", p.CustomDescription)
	return f
}
