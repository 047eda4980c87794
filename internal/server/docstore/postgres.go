package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/dbx"
	"github.com/dmitrijs2005/timekeeper/internal/server/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pgUniqueViolation = "23505"

var postgresDialect = dialect{
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	field:       func(name string) string { return "doc->>'" + name + "'" },
}

// pgStore runs document operations against a pool or a transaction.
type pgStore struct {
	q dbx.DBTX
}

func (s *pgStore) Insert(ctx context.Context, collection string, doc any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	body, err := encodeDoc(doc)
	if err != nil {
		return err
	}

	query := `INSERT INTO ` + collection + ` (doc) VALUES ($1::jsonb)`

	if _, err := s.q.ExecContext(ctx, query, body); err != nil {
		return pgError(err)
	}
	return nil
}

func (s *pgStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	where, args, err := postgresDialect.where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM ` + collection + where + ` ORDER BY seq LIMIT ` + strconv.Itoa(capLimit(limit))

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, dbError(err)
		}
		docs = append(docs, json.RawMessage(b))
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return docs, nil
}

func (s *pgStore) FindOne(ctx context.Context, collection string, filter Filter) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	where, args, err := postgresDialect.where(filter, 0)
	if err != nil {
		return nil, err
	}

	query := `SELECT doc FROM ` + collection + where + ` ORDER BY seq LIMIT 1`

	var b []byte
	if err := s.q.QueryRowContext(ctx, query, args...).Scan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	return json.RawMessage(b), nil
}

func (s *pgStore) UpdateOne(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	patch, err := encodeFields(fields)
	if err != nil {
		return 0, err
	}
	where, args, err := postgresDialect.where(filter, 1)
	if err != nil {
		return 0, err
	}

	query := `UPDATE ` + collection + ` SET doc = doc || $1::jsonb
		WHERE seq = (SELECT seq FROM ` + collection + where + ` ORDER BY seq LIMIT 1)`

	res, err := s.q.ExecContext(ctx, query, append([]any{patch}, args...)...)
	if err != nil {
		return 0, pgError(err)
	}
	return rowsAffected(res)
}

func (s *pgStore) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := postgresDialect.where(filter, 0)
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

func (s *pgStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}
	where, args, err := postgresDialect.where(filter, 0)
	if err != nil {
		return 0, err
	}

	query := `DELETE FROM ` + collection + where

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, dbError(err)
	}
	return rowsAffected(res)
}

// Postgres is a Database backed by PostgreSQL through the pgx stdlib driver.
type Postgres struct {
	pgStore
	db *sql.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{pgStore: pgStore{q: db}, db: db}
}

// OpenPostgres opens a pgx-backed pool for dsn.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgres(db), nil
}

func (p *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &pgStore{q: tx})
	})
}

func (p *Postgres) Migrate(ctx context.Context) error {
	return runMigrations(ctx, p.db, "pgx", migrations.PostgresDir)
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *Postgres) Close() error { return p.db.Close() }

func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorConflict, pgErr.ConstraintName)
	}
	return dbError(err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError(err)
	}
	return n, nil
}
