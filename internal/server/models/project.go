package models

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/optional"
	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists the accepted values in display order.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled}

type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	ClientID    string          `json:"client_id"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Currency    string          `json:"currency"`
	StartDate   *string         `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	Status      ProjectStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProjectInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ClientID    *string          `json:"client_id"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	Currency    *string          `json:"currency"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	Status      *ProjectStatus   `json:"status"`
}

func (in ProjectInput) Build(id string, now time.Time) *Project {
	return &Project{
		ID:          id,
		Name:        deref(in.Name, ""),
		Description: in.Description,
		ClientID:    deref(in.ClientID, ""),
		HourlyRate:  deref(in.HourlyRate, decimal.Zero),
		Currency:    deref(in.Currency, common.DefaultCurrency),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      deref(in.Status, ProjectActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ProjectPatch struct {
	Name        optional.Value[string]          `json:"name"`
	Description optional.Value[string]          `json:"description"`
	ClientID    optional.Value[string]          `json:"client_id"`
	HourlyRate  optional.Value[decimal.Decimal] `json:"hourly_rate"`
	Currency    optional.Value[string]          `json:"currency"`
	StartDate   optional.Value[string]          `json:"start_date"`
	EndDate     optional.Value[string]          `json:"end_date"`
	Status      optional.Value[ProjectStatus]   `json:"status"`
}

func (p ProjectPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "name", p.Name)
	put(f, "description", p.Description)
	put(f, "client_id", p.ClientID)
	put(f, "hourly_rate", p.HourlyRate)
	put(f, "currency", p.Currency)
	put(f, "start_date", p.StartDate)
	put(f, "end_date", p.EndDate)
	put(f, "status", p.Status)
	return f
}
