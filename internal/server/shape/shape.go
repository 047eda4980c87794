// Package shape normalizes entities before they leave the service layer:
// timestamps are reported in UTC at microsecond precision and lists are
// never nil.
package shape

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// Time returns t in UTC truncated to microseconds.
func Time(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func TimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := Time(*t)
	return &v
}

func Client(c *models.Client) *models.Client {
	if c == nil {
		return nil
	}
	out := *c
	out.CreatedAt = Time(c.CreatedAt)
	out.UpdatedAt = Time(c.UpdatedAt)
	return &out
}

func Project(p *models.Project) *models.Project {
	if p == nil {
		return nil
	}
	out := *p
	out.CreatedAt = Time(p.CreatedAt)
	out.UpdatedAt = Time(p.UpdatedAt)
	return &out
}

func TimeEntry(e *models.TimeEntry) *models.TimeEntry {
	if e == nil {
		return nil
	}
	out := *e
	out.StartTime = TimePtr(e.StartTime)
	out.EndTime = TimePtr(e.EndTime)
	out.CreatedAt = Time(e.CreatedAt)
	out.UpdatedAt = Time(e.UpdatedAt)
	return &out
}

func Invoice(inv *models.Invoice) *models.Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	if out.TimeEntries == nil {
		out.TimeEntries = []string{}
	}
	out.CreatedAt = Time(inv.CreatedAt)
	out.UpdatedAt = Time(inv.UpdatedAt)
	return &out
}

func Timer(t *models.ActiveTimer) *models.ActiveTimer {
	if t == nil {
		return nil
	}
	out := *t
	out.StartTime = Time(t.StartTime)
	out.CreatedAt = Time(t.CreatedAt)
	out.UpdatedAt = Time(t.UpdatedAt)
	return &out
}

// List applies f to every item and returns a non-nil slice.
func List[T any](items []*T, f func(*T) *T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
