package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/repository"

	"go.uber.org/zap"
)

// SlotLabel is an entry of the bookable slot catalog shown to clients.
type SlotLabel struct {
	Label string
	Time  string
}

// DefaultSlotCatalog is the fixed set of slots offered each day.
var DefaultSlotCatalog = []SlotLabel{
	{Label: "9:00 AM", Time: "09:00"},
	{Label: "10:00 AM", Time: "10:00"},
	{Label: "11:00 AM", Time: "11:00"},
	{Label: "12:00 PM", Time: "12:00"},
}

type AvailabilityService interface {
	// ListAvailableSlots returns the catalog labels not held by any booking on date.
	ListAvailableSlots(ctx context.Context, date time.Time) ([]string, error)
	// IsSlotFree reports whether no booking holds (date, timeSlot). Called with a
	// transaction context it runs inside that transaction.
	IsSlotFree(ctx context.Context, date time.Time, timeSlot string) (bool, error)
}

type availabilityService struct {
	repo    *repository.Repository
	catalog []SlotLabel
	log     *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:    repo,
		catalog: DefaultSlotCatalog,
		log:     log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) ListAvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	date = calendarDay(date)
	bookings, err := s.repo.Booking.FindByDate(ctx, date)
	if err != nil {
		s.log.Error("Failed to load bookings for date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, NewInternalError("Failed to check availability", err)
	}

	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		taken[b.TimeSlot] = struct{}{}
	}

	available := make([]string, 0, len(s.catalog))
	for _, slot := range s.catalog {
		_, byLabel := taken[slot.Label]
		_, byTime := taken[slot.Time]
		if byLabel || byTime {
			continue
		}
		available = append(available, slot.Label)
	}

	s.log.Debug("Availability computed",
		zap.Time("date", date),
		zap.Int("booked", len(bookings)),
		zap.Int("available", len(available)),
	)

	return available, nil
}

func (s *availabilityService) IsSlotFree(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	exists, err := s.repo.Booking.ExistsBySlot(ctx, calendarDay(date), CanonicalTimeSlot(timeSlot))
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return !exists, nil
}

// calendarDay returns midnight UTC of t's UTC day, the key bookings are stored under.
func calendarDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
