package mongostore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/database"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Runs against a live server only when MONGODB_TEST_URI is set.
func newTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	return newTestRepositoryWith(t, false)
}

func newTestRepositoryWith(t *testing.T, transactions bool) *repository.Repository {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := database.InitMongo(ctx, utils.MongoConfig{URI: uri})
	require.NoError(t, err)

	if transactions {
		supported, err := database.MongoSupportsTransactions(ctx, client)
		require.NoError(t, err)
		if !supported {
			_ = client.Disconnect(ctx)
			t.Skip("MONGODB_TEST_URI is not a replica set")
		}
	}

	dbName := "venue_booking_test_" + uuid.NewString()[:8]
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	store := NewStore(client, dbName, transactions, zap.NewNop())
	require.NoError(t, store.EnsureIndexes(ctx))
	return NewRepository(store)
}

func TestBookingSlotIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	date := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	first := &entity.Booking{Base: entity.Base{ID: "b1", CreatedAt: time.Now().UTC()}, Date: date, TimeSlot: "10:00"}
	require.NoError(t, repo.Booking.Create(ctx, first))

	second := &entity.Booking{Base: entity.Base{ID: "b2", CreatedAt: time.Now().UTC()}, Date: date, TimeSlot: "10:00"}
	assert.ErrorIs(t, repo.Booking.Create(ctx, second), repository.ErrSlotTaken)

	exists, err := repo.Booking.ExistsBySlot(ctx, date, "10:00")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.Booking.FindByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Date.Equal(date))
	assert.Equal(t, []string{}, got.AddOnIDs)
}

func TestCustomerEmailIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Customer.Create(ctx, &entity.Customer{Base: entity.Base{ID: "c1"}, Email: "a@b.co"}))
	err := repo.Customer.Create(ctx, &entity.Customer{Base: entity.Base{ID: "c2"}, Email: "a@b.co"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	missing, err := repo.Customer.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, repo.Customer.Delete(ctx, "nope"), repository.ErrNotFound)
}

func TestMapWriteError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}}}
	err := mapWriteError(dup, repository.ErrSlotTaken)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)

	var we mongo.WriteException
	require.ErrorAs(t, err, &we)

	other := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}}}
	assert.NotErrorIs(t, mapWriteError(other, repository.ErrDuplicateKey), repository.ErrDuplicateKey)

	plain := errors.New("socket closed")
	assert.Equal(t, plain, mapWriteError(plain, repository.ErrSlotTaken))
}

func TestWithinTransaction_ConcurrentSameSlot(t *testing.T) {
	repo := newTestRepositoryWith(t, true)
	ctx := context.Background()
	date := time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC)
	errTaken := errors.New("slot taken")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
				exists, err := repo.Booking.ExistsBySlot(ctx, date, "14:00")
				if err != nil {
					return err
				}
				if exists {
					return errTaken
				}
				return repo.Booking.Create(ctx, &entity.Booking{
					Base:     entity.Base{ID: fmt.Sprintf("b%d", i), CreatedAt: time.Now().UTC()},
					Date:     date,
					TimeSlot: "14:00",
				})
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, errTaken) || errors.Is(err, repository.ErrSlotTaken), "unexpected error: %v", err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	stored, err := repo.Booking.FindByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
