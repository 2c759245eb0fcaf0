// Package memstore keeps every collection in process memory. It backs local
// development runs and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	customers map[string]entity.Customer
	packages  map[string]entity.Package
	addOns    map[string]entity.AddOn
	bookings  map[string]entity.Booking

	log *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		customers: make(map[string]entity.Customer),
		packages:  make(map[string]entity.Package),
		addOns:    make(map[string]entity.AddOn),
		bookings:  make(map[string]entity.Booking),
		log:       log.With(zap.String("repository", "memory")),
	}
}

// NewRepository wires every collection of s into a repository.Repository.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Customer: &customerRepository{s: s},
		Package:  &packageRepository{s: s},
		AddOn:    &addOnRepository{s: s},
		Booking:  &bookingRepository{s: s},
		Tx:       s,
		Store:    s,
	}
}

// WithinTransaction serializes transactions and restores the booking
// collection when fn fails. Only bookings are written inside a scope.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := make(map[string]entity.Booking, len(s.bookings))
	for id, b := range s.bookings {
		snapshot[id] = b
	}
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.bookings = snapshot
		s.mu.Unlock()
		s.log.Debug("Transaction rolled back", zap.Error(err))
		return err
	}

	if err := ctx.Err(); err != nil {
		s.mu.Lock()
		s.bookings = snapshot
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func sortByCreated[T any](items []*T, created func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]) < created(items[j])
	})
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
