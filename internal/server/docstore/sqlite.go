package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/server/migrations"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sqliteDialect = dialect{
	placeholder: func(int) string { return "?" },
	field:       func(name string) string { return "json_extract(doc, '$." + name + "')" },
}

// sqliteStore runs document operations against *sqlx.DB or *sqlx.Tx.
type sqliteStore struct {
	q sqlx.ExtContext
}

func (s *sqliteStore) Insert(ctx context.Context, collection string, doc any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	body, err := encodeDoc(doc)
	if err != nil {
		return err
	}

	query := `INSERT INTO ` + collection + ` (doc) VALUES (json(?))`

	if _, err := s.q.ExecContext(ctx, query, body); err != nil {
		return sqliteError(err)
	}
	return nil
}

func (s *sqliteStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	where, args, err := sqliteDialect.where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM ` + collection + where + ` ORDER BY seq LIMIT ` + strconv.Itoa(capLimit(limit))

	var rows []string
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, dbError(err)
	}
	docs := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, json.RawMessage(r))
	}
	return docs, nil
}

func (s *sqliteStore) FindOne(ctx context.Context, collection string, filter Filter) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	where, args, err := sqliteDialect.where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM ` + collection + where + ` ORDER BY seq LIMIT 1`

	var doc string
	if err := sqlx.GetContext(ctx, s.q, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	return json.RawMessage(doc), nil
}

func (s *sqliteStore) UpdateOne(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	patch, err := encodeFields(fields)
	if err != nil {
		return 0, err
	}
	where, args, err := sqliteDialect.where(filter, 1)
	if err != nil {
		return 0, err
	}

	query := `UPDATE ` + collection + ` SET doc = json_patch(doc, ?)
		WHERE seq = (SELECT seq FROM ` + collection + where + ` ORDER BY seq LIMIT 1)`

	res, err := s.q.ExecContext(ctx, query, append([]any{patch}, args...)...)
	if err != nil {
		return 0, sqliteError(err)
	}
	return rowsAffected(res)
}

func (s *sqliteStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := sqliteDialect.where(filter, 0)
	if err != nil {
		return 0, err
	}

	query := `DELETE FROM ` + collection + `
		WHERE seq = (SELECT seq FROM ` + collection + where + ` ORDER BY seq LIMIT 1)`

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, dbError(err)
	}
	return rowsAffected(res)
}

func (s *sqliteStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := sqliteDialect.where(filter, 0)
	if err != nil {
		return 0, err
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM `+collection+where, args...)
	if err != nil {
		return 0, dbError(err)
	}
	return rowsAffected(res)
}

// SQLite is a Database backed by an SQLite file through modernc.org/sqlite.
// It holds a single connection, so every operation issued while RunInTx is
// active must go through the Store passed to the callback.
type SQLite struct {
	sqliteStore
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path and enables
// WAL journaling.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &SQLite{sqliteStore: sqliteStore{q: db}, db: db}, nil
}

func (s *SQLite) RunInTx(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	return dbx.Run(
		func() (*sqlx.Tx, error) { return s.db.BeginTxx(ctx, nil) },
		func(tx *sqlx.Tx) error { return fn(ctx, &sqliteStore{q: tx}) },
	)
}

func (s *SQLite) Migrate(ctx context.Context) error {
	return runMigrations(ctx, s.db.DB, "sqlite3", migrations.SQLiteDir)
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close() error { return s.db.Close() }

func sqliteError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")) {
			return fmt.Errorf("%w: %s", common.ErrorConflict, se.Error())
		}
	}
	return dbError(err)
}
