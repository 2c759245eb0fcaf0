package memstore

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
)

type bookingRepository struct {
	s *Store
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.bookings {
		if b.Date.Equal(booking.Date) && b.TimeSlot == booking.TimeSlot {
			return repository.ErrSlotTaken
		}
	}

	stored := *booking
	stored.AddOnIDs = cloneStrings(booking.AddOnIDs)
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	b.AddOnIDs = cloneStrings(b.AddOnIDs)
	return &b, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	return r.collect(func(entity.Booking) bool { return true }), nil
}

func (r *bookingRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	return r.collect(func(b entity.Booking) bool { return b.Date.Equal(date) }), nil
}

func (r *bookingRepository) ExistsBySlot(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.Date.Equal(date) && b.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) collect(match func(entity.Booking) bool) []*entity.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := make([]*entity.Booking, 0)
	for _, b := range r.s.bookings {
		if !match(b) {
			continue
		}
		b := b
		b.AddOnIDs = cloneStrings(b.AddOnIDs)
		bookings = append(bookings, &b)
	}
	sortByCreated(bookings, func(b *entity.Booking) int64 { return b.CreatedAt.UnixNano() })
	return bookings
}
