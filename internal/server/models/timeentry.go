package models

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/optional"
)

type TimeEntry struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	// Duration is in whole minutes.
	Duration  int       `json:"duration"`
	Date      string    `json:"date"`
	IsManual  bool      `json:"is_manual"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TimeEntryInput struct {
	ProjectID   *string    `json:"project_id"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Duration    *int       `json:"duration"`
	Date        *string    `json:"date"`
	IsManual    *bool      `json:"is_manual"`
}

func (in TimeEntryInput) Build(id string, now time.Time) *TimeEntry {
	return &TimeEntry{
		ID:          id,
		ProjectID:   deref(in.ProjectID, ""),
		Description: deref(in.Description, ""),
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Duration:    deref(in.Duration, 0),
		Date:        deref(in.Date, ""),
		IsManual:    deref(in.IsManual, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type TimeEntryPatch struct {
	ProjectID   optional.Value[string]    `json:"project_id"`
	Description optional.Value[string]    `json:"description"`
	StartTime   optional.Value[time.Time] `json:"start_time"`
	EndTime     optional.Value[time.Time] `json:"end_time"`
	Duration    optional.Value[int]       `json:"duration"`
	Date        optional.Value[string]    `json:"date"`
	IsManual    optional.Value[bool]      `json:"is_manual"`
}

func (p TimeEntryPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "project_id", p.ProjectID)
	put(f, "description", p.Description)
	put(f, "start_time", p.StartTime)
	put(f, "end_time", p.EndTime)
	put(f, "duration", p.Duration)
	put(f, "date", p.Date)
	put(f, "is_manual", p.IsManual)
	return f
}
