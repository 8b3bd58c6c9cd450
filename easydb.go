// Package easydb is a thin convenience wrapper around a pooled database
// handle. It exposes CRUD helpers built from SQL templates, an escape hatch
// for arbitrary parameterized statements, and normalizes every underlying
// failure into the single errorspkg.Error kind.
//
// Table and column names are interpolated into the SQL text after allow-list
// validation; values are always bound as parameters.
package easydb

import (
	"context"

	_ "github.com/lib/pq"

	"github.com/go-petr/easydb/pkg/configpkg"
	"github.com/go-petr/easydb/pkg/dbpkg"
	"github.com/go-petr/easydb/pkg/errorspkg"
)

const driverName = "postgres"

// Client translates CRUD intents into parameterized SQL and executes them
// through a pooled connection. It is safe for concurrent use; every call
// acquires its own connection and releases it before returning.
type Client struct {
	pool dbpkg.Pool
}

// New opens a bounded connection pool for the configured database and
// verifies connectivity. The client owns the pool until Close.
func New(config configpkg.Config) (*Client, error) {
	const op = "easydb.New"

	db, err := dbpkg.Setup(driverName, config.DSN(), config.PoolSize)
	if err != nil {
		return nil, errorspkg.New(op, err)
	}

	return &Client{pool: dbpkg.NewSQLPool(db)}, nil
}

// NewWithPool wraps an existing pool. The client takes ownership of it.
func NewWithPool(pool dbpkg.Pool) *Client {
	return &Client{pool: pool}
}

// Ping verifies that a connection can be acquired.
func (c *Client) Ping(ctx context.Context) error {
	const op = "easydb.Ping"

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return errorspkg.New(op, err)
	}

	if err := conn.Release(); err != nil {
		return errorspkg.New(op, err)
	}

	return nil
}

// Close tears down the pool. The client must not be used afterwards.
func (c *Client) Close() error {
	return c.pool.Close()
}
