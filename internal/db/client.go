package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPoolMaxConnLifetime = time.Hour
	defaultPoolMaxConns        = 10
	connectTimeout             = 10 * time.Second
)

// ErrNotConfigured is returned when no database URL was provided.
var ErrNotConfigured = errors.New("database url not configured")

// Pool wraps pgx connection pooling for the repositories in this package.
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects to Supabase Postgres. The transaction pooler in front of
// Supabase does not support prepared statements, hence the simple protocol.
func NewPool(ctx context.Context, connString string) (*Pool, error) {
	if connString == "" {
		return nil, ErrNotConfigured
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConnLifetime = defaultPoolMaxConnLifetime
	if cfg.MaxConns < defaultPoolMaxConns {
		cfg.MaxConns = defaultPoolMaxConns
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Ping reports database reachability for health checks.
func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return ErrNotConfigured
	}
	return p.Pool.Ping(ctx)
}

func (p *Pool) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
