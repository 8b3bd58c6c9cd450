package easydb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/easydb/pkg/dbpkg"
	"github.com/go-petr/easydb/pkg/errorspkg"
)

var errEmptyEntry = errors.New("entry has no columns")

// GetMultiple returns every row of table where key equals value.
// A query that matches nothing returns an empty slice, not an error.
func (c *Client) GetMultiple(ctx context.Context, table, key string, value interface{}) ([]Row, error) {
	const op = "easydb.GetMultiple"

	query, err := buildSelect(table, key, false)
	if err != nil {
		return nil, errorspkg.New(op, err)
	}

	return c.queryRows(ctx, op, query, []interface{}{value})
}

// GetSingle returns the first row of table where key equals value,
// or ErrNotFound when nothing matches.
func (c *Client) GetSingle(ctx context.Context, table, key string, value interface{}) (Row, error) {
	const op = "easydb.GetSingle"

	query, err := buildSelect(table, key, true)
	if err != nil {
		return Row{}, errorspkg.New(op, err)
	}

	rows, err := c.queryRows(ctx, op, query, []interface{}{value})
	if err != nil {
		return Row{}, err
	}

	if len(rows) == 0 {
		return Row{}, ErrNotFound
	}

	return rows[0], nil
}

// AddEntry inserts the entry into table and reports whether exactly one row
// was affected.
func (c *Client) AddEntry(ctx context.Context, table string, entry *Entry) (bool, error) {
	const op = "easydb.AddEntry"

	if entry == nil || entry.Len() == 0 {
		return false, errorspkg.New(op, errEmptyEntry)
	}

	query, err := buildInsert(table, entry)
	if err != nil {
		return false, errorspkg.New(op, err)
	}

	params := make([]interface{}, len(entry.values))
	copy(params, entry.values)

	affected, err := c.execCommit(ctx, op, query, params)
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// UpdateSingleField sets field to newValue on every row of table where
// matchKey equals matchValue and reports whether any row was affected.
func (c *Client) UpdateSingleField(ctx context.Context, table, matchKey string, matchValue interface{}, field string, newValue interface{}) (bool, error) {
	const op = "easydb.UpdateSingleField"

	query, err := buildUpdate(table, matchKey, field)
	if err != nil {
		return false, errorspkg.New(op, err)
	}

	affected, err := c.execCommit(ctx, op, query, []interface{}{newValue, matchValue})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteEntry removes every row of table where key equals value and reports
// whether any row was affected.
func (c *Client) DeleteEntry(ctx context.Context, table, key string, value interface{}) (bool, error) {
	const op = "easydb.DeleteEntry"

	query, err := buildDelete(table, key)
	if err != nil {
		return false, errorspkg.New(op, err)
	}

	affected, err := c.execCommit(ctx, op, query, []interface{}{value})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Result carries the outcome of ExecuteQuery: rows for statements that
// return them, the affected count for everything else.
type Result struct {
	Rows         []Row
	RowsAffected int64
}

// ExecuteQuery runs an arbitrary parameterized statement. The SQL text must
// never be composed from user input; values belong in params. The statement
// executes inside a transaction that commits or rolls back per the commit
// flag, so a mutating statement with commit=false leaves no trace.
func (c *Client) ExecuteQuery(ctx context.Context, query string, params []interface{}, commit bool) (Result, error) {
	const op = "easydb.ExecuteQuery"

	l := zerolog.Ctx(ctx)

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return Result{}, errorspkg.New(op, err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return Result{}, errorspkg.New(op, err)
	}

	var result Result

	if returnsRows(query) {
		rows, err := tx.QueryContext(ctx, query, params...)
		if err != nil {
			l.Error().Err(err).Send()
			rollback(l, tx)

			return Result{}, errorspkg.New(op, err)
		}

		result.Rows, err = scanRows(rows)
		if err != nil {
			l.Error().Err(err).Send()
			rollback(l, tx)

			return Result{}, errorspkg.New(op, err)
		}
	} else {
		res, err := tx.ExecContext(ctx, query, params...)
		if err != nil {
			l.Error().Err(err).Send()
			rollback(l, tx)

			return Result{}, errorspkg.New(op, err)
		}

		result.RowsAffected, err = res.RowsAffected()
		if err != nil {
			l.Error().Err(err).Send()
			rollback(l, tx)

			return Result{}, errorspkg.New(op, err)
		}
	}

	if !commit {
		if err := tx.Rollback(); err != nil {
			l.Error().Err(err).Send()
			return Result{}, errorspkg.New(op, err)
		}

		return result, nil
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return Result{}, errorspkg.New(op, fmt.Errorf("%w: %v", errorspkg.ErrAmbiguousCommit, err))
	}

	return result, nil
}

func buildSelect(table, key string, single bool) (string, error) {
	t, err := sanitizeIdentifier(table)
	if err != nil {
		return "", err
	}

	k, err := sanitizeIdentifier(key)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", t, k)
	if single {
		query += " LIMIT 1"
	}

	return query, nil
}

func buildInsert(table string, entry *Entry) (string, error) {
	t, err := sanitizeIdentifier(table)
	if err != nil {
		return "", err
	}

	columns := make([]string, len(entry.columns))
	placeholders := make([]string, len(entry.columns))

	for i, c := range entry.columns {
		col, err := sanitizeIdentifier(c)
		if err != nil {
			return "", err
		}

		columns[i] = col
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t, strings.Join(columns, ", "), strings.Join(placeholders, ", ")), nil
}

func buildUpdate(table, matchKey, field string) (string, error) {
	t, err := sanitizeIdentifier(table)
	if err != nil {
		return "", err
	}

	k, err := sanitizeIdentifier(matchKey)
	if err != nil {
		return "", err
	}

	f, err := sanitizeIdentifier(field)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2", t, f, k), nil
}

func buildDelete(table, key string) (string, error) {
	t, err := sanitizeIdentifier(table)
	if err != nil {
		return "", err
	}

	k, err := sanitizeIdentifier(key)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t, k), nil
}

// queryRows runs a read-only statement on its own pooled connection.
func (c *Client) queryRows(ctx context.Context, op, query string, params []interface{}) ([]Row, error) {
	l := zerolog.Ctx(ctx)

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.New(op, err)
	}
	defer conn.Release()

	rows, err := conn.QueryContext(ctx, query, params...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.New(op, err)
	}

	out, err := scanRows(rows)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.New(op, err)
	}

	return out, nil
}

// execCommit runs a mutating statement in a committed transaction on its own
// pooled connection and returns the affected row count.
func (c *Client) execCommit(ctx context.Context, op, query string, params []interface{}) (int64, error) {
	l := zerolog.Ctx(ctx)

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.New(op, err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.New(op, err)
	}

	res, err := tx.ExecContext(ctx, query, params...)
	if err != nil {
		l.Error().Err(err).Send()
		rollback(l, tx)

		return 0, errorspkg.New(op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		rollback(l, tx)

		return 0, errorspkg.New(op, err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.New(op, fmt.Errorf("%w: %v", errorspkg.ErrAmbiguousCommit, err))
	}

	return affected, nil
}

func rollback(l *zerolog.Logger, tx dbpkg.Tx) {
	if err := tx.Rollback(); err != nil {
		l.Error().Err(err).Send()
	}
}

func scanRows(rows dbpkg.Rows) ([]Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}

	for rows.Next() {
		dest := make([]interface{}, len(columns))
		for i := range dest {
			dest[i] = new(interface{})
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		values := make([]Value, len(columns))
		for i := range dest {
			values[i] = newValue(*dest[i].(*interface{}))
		}

		out = append(out, newRow(columns, values))
	}

	if err := rows.Close(); err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// returnsRows reports whether the statement head produces a result set.
func returnsRows(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToUpper(fields[0]) {
	case "SELECT", "SHOW", "WITH", "VALUES", "TABLE", "EXPLAIN":
		return true
	}

	return false
}
