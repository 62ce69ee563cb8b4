package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs fn inside a write transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

func NewTransactor(conn *Connection) Transactor {
	return conn
}

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

var pendingHooks sync.Map // *sqlx.Tx -> *commitHooks

// AfterCommit defers fn until tx, opened by WithinTransaction, commits. fn is dropped when tx
// rolls back and runs at once when tx is nil.
func AfterCommit(tx *sqlx.Tx, fn func()) {
	if tx == nil {
		fn()

		return
	}

	value, _ := pendingHooks.LoadOrStore(tx, &commitHooks{})
	hooks, _ := value.(*commitHooks)

	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
}

func releaseHooks(tx *sqlx.Tx, committed bool) {
	value, ok := pendingHooks.LoadAndDelete(tx)
	if !ok || !committed {
		return
	}

	hooks, _ := value.(*commitHooks)

	hooks.mu.Lock()
	fns := hooks.fns
	hooks.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (c *Connection) WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			releaseHooks(tx, false)

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		releaseHooks(tx, false)

		return err
	}

	if err = tx.Commit(); err != nil {
		releaseHooks(tx, false)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	releaseHooks(tx, true)

	return nil
}
