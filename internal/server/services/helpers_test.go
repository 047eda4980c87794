package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// clock is a controllable time source.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	db    *docstore.SQLite
	svc   *Services
	clock *clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "timekeeper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	c := &clock{t: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	svc := New(db, repomanager.NewDocumentRepositoryManager(), logging.Nop{}, nil)
	for _, b := range []*base{
		&svc.Clients.base, &svc.Projects.base, &svc.TimeEntries.base,
		&svc.Invoices.base, &svc.Timer.base, &svc.Export.base,
	} {
		b.now = c.Now
	}
	return &env{db: db, svc: svc, clock: c}
}

func (e *env) client(t *testing.T, email string) *models.Client {
	t.Helper()
	c, err := e.svc.Clients.Create(context.Background(), models.ClientInput{Name: ptr("Client " + email), Email: ptr(email)})
	require.NoError(t, err)
	return c
}

func (e *env) project(t *testing.T, clientID string) *models.Project {
	t.Helper()
	p, err := e.svc.Projects.Create(context.Background(), models.ProjectInput{
		Name:       ptr("Website"),
		ClientID:   ptr(clientID),
		HourlyRate: ptr(decimal.NewFromInt(80)),
	})
	require.NoError(t, err)
	return p
}

func (e *env) entry(t *testing.T, projectID string) *models.TimeEntry {
	t.Helper()
	te, err := e.svc.TimeEntries.Create(context.Background(), models.TimeEntryInput{
		ProjectID:   ptr(projectID),
		Description: ptr("Design"),
		Duration:    ptr(90),
		Date:        ptr("2024-03-15"),
	})
	require.NoError(t, err)
	return te
}

func patch[T any](t *testing.T, body string) T {
	t.Helper()
	var p T
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

var errBoom = errors.New("boom")

// failingDB fails every operation.
type failingDB struct{}

func (failingDB) Insert(context.Context, string, any) error { return errBoom }
func (failingDB) Find(context.Context, string, docstore.Filter, int) ([]json.RawMessage, error) {
	return nil, errBoom
}
func (failingDB) FindOne(context.Context, string, docstore.Filter) (json.RawMessage, error) {
	return nil, errBoom
}
func (failingDB) UpdateOne(context.Context, string, docstore.Filter, map[string]any) (int64, error) {
	return 0, errBoom
}
func (failingDB) DeleteOne(context.Context, string, docstore.Filter) (int64, error) {
	return 0, errBoom
}
func (failingDB) DeleteMany(context.Context, string, docstore.Filter) (int64, error) {
	return 0, errBoom
}
func (failingDB) RunInTx(context.Context, func(context.Context, docstore.Store) error) error {
	return errBoom
}
func (failingDB) Migrate(context.Context) error { return errBoom }
func (failingDB) Ping(context.Context) error    { return errBoom }
func (failingDB) Close() error                  { return nil }

// isInternal reports whether err carries no caller-facing kind.
func isInternal(err error) bool {
	var ce *common.Error
	return err != nil && !errors.As(err, &ce) && errors.Is(err, errBoom)
}
