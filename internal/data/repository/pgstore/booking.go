package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type bookingRepository struct {
	s   *Store
	log *zap.Logger
}

const bookingColumns = `id, customer_id, booking_date, time_slot, duration, package_id, add_on_ids,
	special_requirements, status, total_price, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_id, booking_date, time_slot, duration, package_id, add_on_ids,
		                      special_requirements, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	addOnIDs := booking.AddOnIDs
	if addOnIDs == nil {
		addOnIDs = []string{}
	}

	_, err := r.s.conn(ctx).Exec(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.Date,
		booking.TimeSlot,
		booking.Duration,
		booking.PackageID,
		addOnIDs,
		booking.SpecialRequirements,
		booking.Status,
		booking.TotalPrice,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", booking.CustomerID),
			zap.String("time_slot", booking.TimeSlot),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, mapWriteError(err, repository.ErrSlotTaken))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.s.conn(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}
	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at`
	return r.query(ctx, query)
}

func (r *bookingRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_date = $1 ORDER BY created_at`
	return r.query(ctx, query, date)
}

// ExistsBySlot takes a transaction scoped advisory lock on the pair before
// reading, so concurrent transactions on the same slot queue behind each other.
func (r *bookingRepository) ExistsBySlot(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	conn := r.s.conn(ctx)

	if inTransaction(ctx) {
		lockKey := date.UTC().Format(time.RFC3339) + "|" + timeSlot
		if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			r.log.Error("Failed to lock slot", zap.Error(err), zap.String("slot", lockKey))
			return false, fmt.Errorf("failed to lock slot: %w", err)
		}
	}

	var exists bool
	err := conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE booking_date = $1 AND time_slot = $2)`,
		date, timeSlot,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slot",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("time_slot", timeSlot),
		)
		return false, fmt.Errorf("failed to check slot: %w", err)
	}

	return exists, nil
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return bookings, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.Duration,
		&booking.PackageID,
		&booking.AddOnIDs,
		&booking.SpecialRequirements,
		&booking.Status,
		&booking.TotalPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Date = booking.Date.UTC()
	return &booking, nil
}
