package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recorder captures the statements sent to the pool or to a transaction.
type recorder struct {
	statements []string
	execErr    error
	exists     bool
}

func (r *recorder) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.statements = append(r.statements, sql)
	return nil, errors.New("query not supported")
}

func (r *recorder) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	r.statements = append(r.statements, sql)
	return existsRow{exists: r.exists}
}

func (r *recorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	if r.execErr != nil && strings.Contains(sql, "INSERT") {
		return pgconn.CommandTag{}, r.execErr
	}
	return pgconn.NewCommandTag("OK"), nil
}

type existsRow struct {
	exists bool
}

func (r existsRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.exists
	return nil
}

type fakeTx struct {
	pgx.Tx
	recorder
	commitErr  error
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return tx.recorder.Query(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.recorder.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.recorder.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakePool struct {
	recorder
	tx     *fakeTx
	begins int
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	p.begins++
	return p.tx, nil
}

func (p *fakePool) Ping(ctx context.Context) error { return nil }

func (p *fakePool) Close() {}

func newFakeStore() (*Store, *fakePool) {
	pool := &fakePool{tx: &fakeTx{}}
	return NewStore(pool, zap.NewNop()), pool
}

func TestMapWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "bookings_date_slot_key"}
	err := mapWriteError(fmt.Errorf("exec: %w", dup), repository.ErrSlotTaken)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "bookings_date_slot_key", pgErr.ConstraintName)

	other := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, mapWriteError(other, repository.ErrSlotTaken), repository.ErrSlotTaken)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapWriteError(plain, repository.ErrDuplicateKey))
}

func TestWithinTransaction_Commits(t *testing.T) {
	store, pool := newFakeStore()
	repo := NewRepository(store)
	date := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	err := repo.Tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		assert.Equal(t, pool.tx, store.conn(ctx))

		exists, err := repo.Booking.ExistsBySlot(ctx, date, "10:00")
		require.NoError(t, err)
		assert.False(t, exists)

		return repo.Booking.Create(ctx, &entity.Booking{Base: entity.Base{ID: "b1"}, Date: date, TimeSlot: "10:00"})
	})
	require.NoError(t, err)

	assert.Equal(t, 1, pool.begins)
	assert.True(t, pool.tx.committed)
	assert.False(t, pool.tx.rolledBack)
	assert.Empty(t, pool.statements, "statements inside the scope must use the transaction")

	require.Len(t, pool.tx.statements, 3)
	assert.Contains(t, pool.tx.statements[0], "pg_advisory_xact_lock")
	assert.Contains(t, pool.tx.statements[1], "SELECT EXISTS")
	assert.Contains(t, pool.tx.statements[2], "INSERT INTO bookings")
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	store, pool := newFakeStore()
	boom := errors.New("boom")

	err := store.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, pool.tx.committed)
	assert.True(t, pool.tx.rolledBack)
}

func TestWithinTransaction_NestedReusesOuter(t *testing.T) {
	store, pool := newFakeStore()

	err := store.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return store.WithinTransaction(ctx, func(ctx context.Context) error {
			assert.Equal(t, pool.tx, store.conn(ctx))
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pool.begins)
}

func TestWithinTransaction_CommitConflict(t *testing.T) {
	store, pool := newFakeStore()
	pool.tx.commitErr = &pgconn.PgError{Code: uniqueViolation}

	err := store.WithinTransaction(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestBookingCreate_UniqueViolation(t *testing.T) {
	store, pool := newFakeStore()
	pool.execErr = &pgconn.PgError{Code: uniqueViolation}
	repo := NewRepository(store)

	err := repo.Booking.Create(context.Background(), &entity.Booking{Base: entity.Base{ID: "b2"}, TimeSlot: "10:00"})
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestExistsBySlot_OutsideTransactionSkipsLock(t *testing.T) {
	store, pool := newFakeStore()
	pool.exists = true
	repo := NewRepository(store)

	exists, err := repo.Booking.ExistsBySlot(context.Background(), time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), "10:00")
	require.NoError(t, err)
	assert.True(t, exists)

	require.Len(t, pool.statements, 1)
	assert.NotContains(t, pool.statements[0], "pg_advisory_xact_lock")
	assert.Zero(t, pool.begins)
}
