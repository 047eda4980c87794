package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/migrations"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// exit is a seam for testing gooseLogger.Fatalf.
var exit = os.Exit

// gooseLogger routes goose output through logging.Logger.
type gooseLogger struct {
	log logging.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	exit(1)
}

// SetMigrationLogger sends migration progress to log. goose keeps a single
// process-wide logger.
func SetMigrationLogger(log logging.Logger) {
	goose.SetLogger(gooseLogger{log: log.With("module", "migrations")})
}

// runMigrations applies the embedded migrations of one dialect directory.
func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}
