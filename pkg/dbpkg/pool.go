// Package dbpkg provides the connection pool collaborator used by the helpers.
package dbpkg

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source pool.go -destination pool_mock.go -package dbpkg

// Pool hands out one connection per call and takes it back on Release.
type Pool interface {
	Acquire(ctx context.Context) (Connection, error)
	Close() error
}

// Connection is a single pooled database connection.
type Connection interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error)
	BeginTx(ctx context.Context) (Tx, error)
	Release() error
}

// Tx is a single transaction on a pooled connection.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Commit() error
	Rollback() error
}

// Rows iterates over a query result.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}

// Setup opens a database handle, bounds the pool, and verifies connectivity.
func Setup(driver, source string, poolSize int) (*sql.DB, error) {
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}

	if poolSize > 0 {
		db.SetMaxOpenConns(poolSize)
		db.SetMaxIdleConns(poolSize)
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// SQLPool implements Pool on top of the standard library pool.
type SQLPool struct {
	db *sql.DB
}

// NewSQLPool wraps the given handle.
func NewSQLPool(db *sql.DB) *SQLPool {
	return &SQLPool{db: db}
}

// Acquire checks a dedicated connection out of the pool.
func (p *SQLPool) Acquire(ctx context.Context) (Connection, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	return &sqlConn{conn: conn}, nil
}

// Close tears down the pool.
func (p *SQLPool) Close() error {
	return p.db.Close()
}

// DB exposes the underlying handle for test setup.
func (p *SQLPool) DB() *sql.DB {
	return p.db
}

type sqlConn struct {
	conn *sql.Conn
}

func (c *sqlConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

func (c *sqlConn) QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (c *sqlConn) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &sqlTx{tx: tx}, nil
}

// Release returns the connection to the pool.
func (c *sqlConn) Release() error {
	return c.conn.Close()
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *sqlTx) QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (t *sqlTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}
