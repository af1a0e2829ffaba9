package postgres

import (
	"context"
	"database/sql"
)

type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) Row
}

// Row é o subconjunto de *sql.Row usado pelos repositórios
type Row interface {
	Scan(dest ...any) error
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func (c *Connection) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if !c.ready() {
		return nil, ErrNotConfigured
	}
	return c.DB.ExecContext(ctx, query, args...)
}

func (c *Connection) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if !c.ready() {
		return nil, ErrNotConfigured
	}
	return c.DB.QueryContext(ctx, query, args...)
}

func (c *Connection) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	if !c.ready() {
		return errRow{err: ErrNotConfigured}
	}
	return c.DB.QueryRowContext(ctx, query, args...)
}

// txQueryer expõe a transação com a mesma interface da conexão, para os
// repositórios montarem as queries do mesmo jeito dentro e fora dela
type txQueryer struct {
	tx *sql.Tx
}

func (t txQueryer) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t txQueryer) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t txQueryer) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}
