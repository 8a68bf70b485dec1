// Package repository persists the simulation state with sqlx over PostgreSQL
// (lib/pq) or SQLite (modernc.org/sqlite).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/openbanqr/internal/apperr"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Dialect selects the SQL flavour of the connected database
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

const sqlitePragmas = "_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the database and verifies the connection
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "postgres":
	case "sqlite":
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqlitePragmas
		} else {
			dsn += "?" + sqlitePragmas
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// SQLite has a single writer; one connection keeps transactions serialised.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Repository provides database operations
type Repository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewRepository initializes a new repository
func NewRepository(db *sqlx.DB) *Repository {
	dialect := Postgres
	if db.DriverName() == "sqlite" {
		dialect = SQLite
	}
	return &Repository{db: db, dialect: dialect}
}

// DB exposes the underlying handle
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// Migrate creates any missing tables
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaFor(r.dialect)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Queries runs statements outside of a transaction
func (r *Repository) Queries() *Queries {
	return &Queries{ext: r.db, dialect: r.dialect}
}

// WithTx runs fn in one transaction. It commits when fn returns nil and rolls
// back on any error or panic.
func (r *Repository) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Queries{ext: tx, dialect: r.dialect}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Queries holds the statements, bound to either the database or a transaction
type Queries struct {
	ext     queryer
	dialect Dialect
}

func (q *Queries) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return q.ext.GetContext(ctx, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) sel(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return q.ext.SelectContext(ctx, dest, q.ext.Rebind(query), args...)
}

func (q *Queries) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return q.ext.ExecContext(ctx, q.ext.Rebind(query), args...)
}

// insert runs an INSERT and returns the generated id
func (q *Queries) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var id int64
	err := q.ext.QueryRowxContext(ctx, q.ext.Rebind(query+" RETURNING id"), args...).Scan(&id)
	return id, err
}

// execOne runs an UPDATE/DELETE that must touch exactly one row
func (q *Queries) execOne(ctx context.Context, what string, query string, args ...interface{}) error {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return wrapErr("update "+what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("update "+what, err)
	}
	if n == 0 {
		return apperr.NotFound("%s", what)
	}
	return nil
}

// lock returns the row-locking suffix for reads that precede a write
func (q *Queries) lock(forUpdate bool) string {
	if forUpdate && q.dialect == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// wrapErr maps driver errors onto the API error kinds
func wrapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("%s", strings.TrimPrefix(strings.TrimPrefix(op, "find "), "get "))
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Conflict("%s: duplicate key", op)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperr.Conflict("%s: duplicate key", op)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
