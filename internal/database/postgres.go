package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	MaxConns        = 10
	MinConns        = 2
	MaxConnLifetime = 10 * time.Minute
	MaxConnIdleTime = 5 * time.Minute
)

func openPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing postgres config: %w", err)
	}

	db := stdlib.OpenDB(*config)

	// Configure the pool
	db.SetMaxOpenConns(MaxConns)
	db.SetMaxIdleConns(MinConns)
	db.SetConnMaxLifetime(MaxConnLifetime)
	db.SetConnMaxIdleTime(MaxConnIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging postgres: %w", err)
	}

	return db, nil
}
