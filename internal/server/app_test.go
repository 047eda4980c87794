package server

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/config"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = filepath.Join(t.TempDir(), "app.db")
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCHealthAddr = ""
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_OpensAndMigrates(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })

	list, err := app.services.Clients.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.False(t, app.services.Export.ArchiveEnabled())
}

func TestNewApp_BadDriver(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDriver = "mysql"
	_, err := NewApp(context.Background(), c, logging.Nop{})
	assert.Error(t, err)
}

func TestNewServices_ArchiveEnabledWithBucket(t *testing.T) {
	c := testConfig(t)
	c.S3Bucket = "exports"
	db, err := OpenDatabase(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.True(t, NewServices(db, c, logging.Nop{}).Export.ArchiveEnabled())
}

func TestHandler_ServesAPI(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })

	srvURL := startHandler(t, app.Handler())
	resp, err := http.Get(srvURL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.Nop{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	c := testConfig(t)
	c.HTTPAddr = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c, logging.Nop{})
	require.NoError(t, err)

	assert.Error(t, app.Run(context.Background()))
}

func TestNewApp_LogsStorageAndMigrations(t *testing.T) {
	var buf bytes.Buffer
	c := testConfig(t)
	c.S3Bucket = "exports"

	app, err := NewApp(context.Background(), c, logging.New(&buf, "info", "json"))
	require.NoError(t, err)
	t.Cleanup(func() { app.db.Close() })
	t.Cleanup(func() { docstore.SetMigrationLogger(logging.Nop{}) })

	out := buf.String()
	assert.Contains(t, out, `"module":"migrations"`)
	assert.Contains(t, out, `"msg":"storage ready"`)
	assert.Contains(t, out, `"export_archiving":true`)
}
