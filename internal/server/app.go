// Package server assembles the timekeeper server: storage, services, the
// HTTP API and the gRPC health endpoint, with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/archive"
	"github.com/dmitrijs2005/timekeeper/internal/server/config"
	"github.com/dmitrijs2005/timekeeper/internal/server/docstore"
	"github.com/dmitrijs2005/timekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/timekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/timekeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       docstore.Database
	services *services.Services
}

// OpenDatabase opens and migrates the configured store. Migration output
// goes to logger.
func OpenDatabase(ctx context.Context, c *config.Config, logger logging.Logger) (docstore.Database, error) {
	docstore.SetMigrationLogger(logger)

	db, err := docstore.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migrate error: %w", err)
	}
	return db, nil
}

// NewServices wires the services over db. Archiving is enabled when an S3
// bucket is configured.
func NewServices(db docstore.Database, c *config.Config, logger logging.Logger) *services.Services {
	var archiver services.Archiver
	if c.S3Bucket != "" {
		archiver = archive.NewS3Archiver(archive.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			URLValidity:  c.ArchiveURLValidity,
		})
	}
	return services.New(db, repomanager.NewDocumentRepositoryManager(), logger, archiver)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := OpenDatabase(ctx, c, logger)
	if err != nil {
		return nil, err
	}
	svc := NewServices(db, c, logger)
	logger.Info(ctx, "storage ready",
		"driver", c.DatabaseDriver,
		"export_archiving", svc.Export.ArchiveEnabled(),
	)
	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		services: svc,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Handler returns the HTTP API handler.
func (app *App) Handler() http.Handler {
	return httpapi.NewServer(app.services, app.logger, httpapi.Options{
		RequestTimeout:     app.config.RequestTimeout,
		CORSAllowedOrigins: app.config.CORSAllowedOrigins,
		MetricsEnabled:     app.config.MetricsEnabled,
	}).Handler()
}

func (app *App) serveHTTP(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{Handler: app.Handler()}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "http shutdown", "err", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
// The database is closed before Run returns.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	lis, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.serveHTTP(ctx, lis); err != nil {
			fail(err)
		}
	}()

	if app.config.GRPCHealthAddr != "" {
		hs := gs.NewHealthServer(app.config.GRPCHealthAddr, app.logger, app.db, app.config.HealthProbeInterval)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hs.Run(ctx); err != nil {
				fail(err)
			}
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
