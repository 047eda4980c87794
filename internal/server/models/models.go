// Package models defines the timekeeper entities as they are persisted in the
// document store and returned to API callers, together with their create
// inputs and partial-update patches.
package models

import (
	"github.com/dmitrijs2005/timekeeper/internal/optional"
	"github.com/shopspring/decimal"
)

func init() {
	// Money and hours travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Collection names in the document store.
const (
	CollectionClients      = "clients"
	CollectionProjects     = "projects"
	CollectionTimeEntries  = "time_entries"
	CollectionInvoices     = "invoices"
	CollectionActiveTimers = "active_timers"
)

// put copies a present patch value into fields; an explicit null is kept
// as nil so the store clears the attribute.
func put[T any](fields map[string]any, key string, v optional.Value[T]) {
	if !v.IsSet() {
		return
	}
	if val, ok := v.Get(); ok {
		fields[key] = val
		return
	}
	fields[key] = nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
