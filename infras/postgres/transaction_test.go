package postgres_test

import (
	"context"
	"errors"
	"testing"

	"houserental/infras/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mock
}

func TestWithinTransaction_Commit(t *testing.T) {
	conn, mock := newConnection(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE properties").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE properties SET status = 'rented'")

		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_Rollback(t *testing.T) {
	conn, mock := newConnection(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	errBoom := errors.New("boom")

	err := conn.WithinTransaction(context.Background(), func(_ *sqlx.Tx) error {
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_BeginError(t *testing.T) {
	conn, mock := newConnection(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := conn.WithinTransaction(context.Background(), func(_ *sqlx.Tx) error {
		called = true

		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit(t *testing.T) {
	t.Run("runs once the transaction commits", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		ran := 0
		err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			postgres.AfterCommit(tx, func() {
				assert.NoError(t, mock.ExpectationsWereMet())
				ran++
			})

			assert.Zero(t, ran)

			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, ran)
	})

	t.Run("dropped on rollback", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		ran := false
		err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			postgres.AfterCommit(tx, func() { ran = true })

			return errors.New("insert failed")
		})

		assert.Error(t, err)
		assert.False(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped when commit fails", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		ran := false
		err := conn.WithinTransaction(context.Background(), func(tx *sqlx.Tx) error {
			postgres.AfterCommit(tx, func() { ran = true })

			return nil
		})

		assert.Error(t, err)
		assert.False(t, ran)
	})

	t.Run("runs at once without a transaction", func(t *testing.T) {
		ran := false
		postgres.AfterCommit(nil, func() { ran = true })

		assert.True(t, ran)
	})
}
