// Package docstore implements a small document store over SQL databases.
//
// Every collection is a table holding JSON documents. Documents are matched
// by exact equality on top-level string attributes and returned in
// insertion order. Two backends are provided: PostgreSQL (JSONB) and SQLite
// (JSON text).
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/timekeeper/internal/common"
)

// Filter matches documents whose top-level attributes equal the given
// values. An empty Filter matches every document.
type Filter map[string]string

// Store is the create/read/update/delete-by-filter contract consumed by the
// data-access layer.
type Store interface {
	Insert(ctx context.Context, collection string, doc any) error
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]json.RawMessage, error)
	// FindOne returns common.ErrorNotFound when nothing matches.
	FindOne(ctx context.Context, collection string, filter Filter) (json.RawMessage, error)
	// UpdateOne merges fields into the first matching document. A nil field
	// value clears the attribute.
	UpdateOne(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error)
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)
}

// Database is a Store owning its connection pool.
type Database interface {
	Store
	// RunInTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

var collections = map[string]struct{}{
	"clients":       {},
	"projects":      {},
	"time_entries":  {},
	"invoices":      {},
	"active_timers": {},
}

var fieldName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func checkCollection(name string) error {
	if _, ok := collections[name]; !ok {
		return fmt.Errorf("unknown collection %q", name)
	}
	return nil
}

// dialect renders backend-specific SQL fragments.
type dialect struct {
	placeholder func(n int) string
	field       func(name string) string
}

// where renders filter as a conjunction of equality tests. Placeholders are
// numbered from offset+1. Keys are emitted in sorted order.
func (d dialect) where(filter Filter, offset int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		if !fieldName.MatchString(k) {
			return "", nil, fmt.Errorf("invalid filter field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		conds = append(conds, d.field(k)+" = "+d.placeholder(offset+i+1))
		args = append(args, filter[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// capLimit bounds limit to (0, common.ResultCap].
func capLimit(limit int) int {
	if limit <= 0 || limit > common.ResultCap {
		return common.ResultCap
	}
	return limit
}

func encodeFields(fields map[string]any) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(b), nil
}

func encodeDoc(doc any) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	if len(b) == 0 || b[0] != '{' {
		return "", fmt.Errorf("document must encode to a JSON object")
	}
	return string(b), nil
}

// storeError is an unexpected backend failure. It matches both
// common.ErrorInternal and the driver error under errors.Is.
type storeError struct{ err error }

func (e *storeError) Error() string   { return "db error: " + e.err.Error() }
func (e *storeError) Unwrap() []error { return []error{common.ErrorInternal, e.err} }

func dbError(err error) error {
	return &storeError{err: err}
}
