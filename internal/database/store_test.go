package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlitePath(t *testing.T) {
	cases := map[string]string{
		"sqlite:///./local_data.db": "./local_data.db",
		"sqlite:///data/mirror.db":  "data/mirror.db",
		"sqlite:////var/lib/app.db": "/var/lib/app.db",
		"sqlite://":                 ":memory:",
		"sqlite:///:memory:":        ":memory:",
	}
	for in, want := range cases {
		assert.Equal(t, want, sqlitePath(in), in)
	}
}

func TestRebind(t *testing.T) {
	query := "UPDATE contacts SET name = ?, email = ? WHERE id = ?"

	assert.Equal(t, query, Rebind(SQLite, query))
	assert.Equal(t, "UPDATE contacts SET name = $1, email = $2 WHERE id = $3", Rebind(Postgres, query))
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), "mysql://root@localhost/db")
	assert.Error(t, err)
}

func TestOpen_AppliesSchemaIdempotently(t *testing.T) {
	ctx := context.Background()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "nested", "mirror.db")

	store, err := Open(ctx, url)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not fail on existing tables
	store, err = Open(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, SQLite, store.Dialect())
	for _, table := range []string{"contacts", "invoices"} {
		var count int
		err := store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
		require.NoError(t, err, table)
		assert.Zero(t, count, table)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	defer store.Close()

	boom := errors.New("boom")

	// ACT: insert then fail
	err = store.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO contacts (remote_id, name) VALUES (?, ?)", 1, "Alice"); err != nil {
			return err
		}
		return boom
	})

	// ASSERT: error surfaces and nothing was written
	require.ErrorIs(t, err, boom)
	var count int
	require.NoError(t, store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count))
	assert.Zero(t, count)

	// Commit path
	err = store.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO contacts (remote_id, name) VALUES (?, ?)", 1, "Alice")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewRedisClient_EmptyURL(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, client)
}
