package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx, so repositories
// can run against the pool, a request-scoped connection or a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the local relational store shared by the API service and the
// sync job. Owned by main; closed on shutdown.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the store named by databaseURL and applies the schema.
// Supported forms are sqlite:///relative/path, sqlite:////absolute/path,
// sqlite:// (in memory) and postgres:// or postgresql:// URLs.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dialect = SQLite
		db, err = openSQLite(ctx, sqlitePath(databaseURL))
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		dialect = Postgres
		db, err = openPostgres(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", databaseURL)
	}
	if err != nil {
		return nil, err
	}

	store := &Store{db: db, dialect: dialect}
	if err := store.applySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an already opened database. The schema is not applied.
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Conn reserves a single connection from the pool. The caller must Close it,
// which hands the connection back.
func (s *Store) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

// WithTx runs fn inside a transaction. Any error returned by fn, or a panic,
// rolls the transaction back; otherwise it is committed.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (s *Store) Rebind(query string) string {
	return Rebind(s.dialect, query)
}

func Rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *Store) applySchema(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema/" + string(s.dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// sqlitePath follows the SQLAlchemy URL convention: three slashes for a
// relative path, four for an absolute one, nothing for an in-memory store.
func sqlitePath(databaseURL string) string {
	path := strings.TrimPrefix(databaseURL, "sqlite://")
	if path == "" || path == "/" || path == "/:memory:" {
		return ":memory:"
	}
	return strings.TrimPrefix(path, "/")
}
