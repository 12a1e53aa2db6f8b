// Package db stores player saves and battle reports in PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB owns the pool shared by the player and battle report repositories.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to the battlesim database and verifies it answers.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to battlesim database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging battlesim database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Persistence returns the repositories bound to this pool.
func (d *DB) Persistence() *PersistenceService {
	return NewPersistenceService(d.pool)
}

// Close releases every pooled connection. Repositories stop working after it.
func (d *DB) Close() {
	d.pool.Close()
}
