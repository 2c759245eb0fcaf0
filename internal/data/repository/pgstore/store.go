// Package pgstore implements the repositories on PostgreSQL through pgx.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/repository"
	"venue-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id                   TEXT PRIMARY KEY,
	full_name            TEXT NOT NULL,
	email                TEXT NOT NULL UNIQUE,
	phone_number         TEXT NOT NULL,
	special_requirements TEXT,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS packages (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS add_ons (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
	category    TEXT NOT NULL CHECK (category IN ('food', 'decoration')),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id                   TEXT PRIMARY KEY,
	customer_id          TEXT NOT NULL,
	booking_date         TIMESTAMPTZ NOT NULL,
	time_slot            TEXT NOT NULL,
	duration             INTEGER NOT NULL CHECK (duration > 0),
	package_id           TEXT NOT NULL,
	add_on_ids           TEXT[] NOT NULL DEFAULT '{}',
	special_requirements TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL,
	total_price          DOUBLE PRECISION NOT NULL,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL,
	CONSTRAINT bookings_date_slot_key UNIQUE (booking_date, time_slot)
);

CREATE INDEX IF NOT EXISTS bookings_created_at_idx ON bookings (created_at);
`

type txKey struct{}

type Store struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStore(db database.PgxIface, log *zap.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With(zap.String("repository", "postgres")),
	}
}

func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Customer: &customerRepository{s: s, log: s.log.With(zap.String("table", "customers"))},
		Package:  &packageRepository{s: s, log: s.log.With(zap.String("table", "packages"))},
		AddOn:    &addOnRepository{s: s, log: s.log.With(zap.String("table", "add_ons"))},
		Booking:  &bookingRepository{s: s, log: s.log.With(zap.String("table", "bookings"))},
		Tx:       s,
		Store:    s,
	}
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// WithinTransaction begins a transaction, hands it to fn through ctx and
// commits when fn succeeds. Nested calls reuse the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", mapWriteError(err, repository.ErrSlotTaken))
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	s.db.Close()
	return nil
}

// conn returns the transaction carried by ctx, or the pool.
func (s *Store) conn(ctx context.Context) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db
}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

func mapWriteError(err error, duplicate error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", duplicate, err)
	}
	return err
}
