package models

import "time"

// ActiveTimer is the single in-flight timer. At most one exists at a time.
type ActiveTimer struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TimerStartInput struct {
	ProjectID   *string `json:"project_id"`
	Description *string `json:"description"`
}

func (in TimerStartInput) Build(id string, now time.Time) *ActiveTimer {
	return &ActiveTimer{
		ID:          id,
		ProjectID:   deref(in.ProjectID, ""),
		Description: deref(in.Description, ""),
		StartTime:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
