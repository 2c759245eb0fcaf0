// Package events publishes booking lifecycle events to downstream consumers.
package events

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
)

const EventBookingCreated = "booking.created"

// BookingCreatedEvent is the JSON payload written for every committed booking.
type BookingCreatedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	BookingID  string    `json:"booking_id"`
	CustomerID string    `json:"customer_id"`
	PackageID  string    `json:"package_id"`
	AddOnIDs   []string  `json:"add_on_ids"`
	Date       time.Time `json:"date"`
	TimeSlot   string    `json:"time_slot"`
	Duration   int       `json:"duration"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewBookingCreatedEvent(eventID string, booking *entity.Booking) BookingCreatedEvent {
	addOnIDs := booking.AddOnIDs
	if addOnIDs == nil {
		addOnIDs = []string{}
	}
	return BookingCreatedEvent{
		EventID:    eventID,
		EventType:  EventBookingCreated,
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		PackageID:  booking.PackageID,
		AddOnIDs:   addOnIDs,
		Date:       booking.Date.UTC(),
		TimeSlot:   booking.TimeSlot,
		Duration:   booking.Duration,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		CreatedAt:  booking.CreatedAt.UTC(),
	}
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, booking *entity.Booking) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, *entity.Booking) error { return nil }

func (NopPublisher) Close() error { return nil }
