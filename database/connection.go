package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridoystarlord/olapschema/utils"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Connect opens a pool for the given URL and checks it answers.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return p, nil
}

// GetPool returns the shared pool for DATABASE_URL, opening it on first use.
func GetPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		utils.LoadEnv()
		url, err := utils.GetDatabaseURL()
		if err != nil {
			poolErr = err
			return
		}
		pool, poolErr = Connect(ctx, url)
	})

	return pool, poolErr
}

// ClosePool closes the shared pool (should be called on application shutdown)
func ClosePool() {
	if pool != nil {
		pool.Close()
	}
}
