package postgres

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/trackrcommerce/trackr-api/internal/config"
)

// ErrNotConfigured é retornado quando o banco não foi configurado (DSN vazio)
var ErrNotConfigured = errors.New("banco de dados não configurado")

type Conn interface {
	Queryer
	Begin(context.Context) (*sql.Tx, error)
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(Queryer) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	if cfg.DSN == "" {
		return nil, ErrNotConfigured
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

// FromDB embrulha um *sql.DB já aberto (usado nos testes com sqlmock)
func FromDB(db *sql.DB) *Connection {
	return &Connection{DB: db}
}

func (c *Connection) ready() bool {
	return c != nil && c.DB != nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if !c.ready() {
		return ErrNotConfigured
	}
	return c.DB.PingContext(ctx)
}

func (c *Connection) Begin(ctx context.Context) (*sql.Tx, error) {
	if !c.ready() {
		return nil, ErrNotConfigured
	}
	return c.DB.BeginTx(ctx, nil)
}

func (c *Connection) Close() error {
	if !c.ready() {
		return nil
	}
	return c.DB.Close()
}

// RunInTransaction executa fn numa transação. Erro ou panic em fn desfazem tudo.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(Queryer) error) error {
	tx, err := c.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(txQueryer{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}
