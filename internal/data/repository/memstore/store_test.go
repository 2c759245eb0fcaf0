package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBooking(id string, date time.Time, slot string) *entity.Booking {
	return &entity.Booking{
		Base:     entity.Base{ID: id, CreatedAt: time.Now().UTC()},
		Date:     date,
		TimeSlot: slot,
		AddOnIDs: []string{"a1"},
		Status:   entity.BookingStatusPending,
	}
}

func TestWithinTransaction_RollsBackBookings(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewStore(zap.NewNop()))
	date := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	err := repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Booking.Create(ctx, newBooking("b1", date, "09:00")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Booking.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.Booking.Create(ctx, newBooking("b2", date, "09:00"))
	})
	require.NoError(t, err)

	exists, err := repo.Booking.ExistsBySlot(ctx, date, "09:00")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWithinTransaction_CancelledContext(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestBookingCreate_RejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewStore(zap.NewNop()))
	date := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Booking.Create(ctx, newBooking("b1", date, "10:00")))
	err := repo.Booking.Create(ctx, newBooking("b2", date, "10:00"))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	require.NoError(t, repo.Booking.Create(ctx, newBooking("b3", date.AddDate(0, 0, 1), "10:00")))

	onDate, err := repo.Booking.FindByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, onDate, 1)
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewStore(zap.NewNop()))
	date := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Booking.Create(ctx, newBooking("b1", date, "10:00")))

	got, err := repo.Booking.FindByID(ctx, "b1")
	require.NoError(t, err)
	got.AddOnIDs[0] = "tampered"

	again, err := repo.Booking.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, again.AddOnIDs)
}

func TestCustomerRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewStore(zap.NewNop()))

	require.NoError(t, repo.Customer.Create(ctx, &entity.Customer{Base: entity.Base{ID: "c1"}, Email: "a@b.co"}))
	err := repo.Customer.Create(ctx, &entity.Customer{Base: entity.Base{ID: "c2"}, Email: "a@b.co"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	found, err := repo.Customer.FindByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "c1", found.ID)

	assert.ErrorIs(t, repo.Customer.Delete(ctx, "nope"), repository.ErrNotFound)
}

func TestAddOnRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewStore(zap.NewNop()))

	require.NoError(t, repo.AddOn.Create(ctx, &entity.AddOn{Base: entity.Base{ID: "a1"}, Name: "Cake"}))
	require.NoError(t, repo.AddOn.Create(ctx, &entity.AddOn{Base: entity.Base{ID: "a2"}, Name: "Balloons"}))

	found, err := repo.AddOn.FindByIDs(ctx, []string{"a1", "a1", "ghost"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a1", found[0].ID)
}
