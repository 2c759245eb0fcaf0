package repository

import (
	"context"
	"errors"
	"time"

	"venue-booking/internal/data/entity"
)

var (
	// ErrNotFound is returned by Update and Delete when no record has the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index other than the booking slot.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrSlotTaken is returned when a booking insert collides with an existing (date, time_slot) pair.
	ErrSlotTaken = errors.New("time slot already booked")
)

// Find methods return (nil, nil) when the record does not exist.

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	FindByID(ctx context.Context, id string) (*entity.Package, error)
	FindAll(ctx context.Context) ([]*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	Delete(ctx context.Context, id string) error
}

type AddOnRepository interface {
	Create(ctx context.Context, addOn *entity.AddOn) error
	FindByID(ctx context.Context, id string) (*entity.AddOn, error)
	// FindByIDs returns the add-ons that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*entity.AddOn, error)
	FindAll(ctx context.Context) ([]*entity.AddOn, error)
	Update(ctx context.Context, addOn *entity.AddOn) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByDate(ctx context.Context, date time.Time) ([]*entity.Booking, error)
	// ExistsBySlot reports whether any booking holds the (date, timeSlot) pair.
	// Inside a transaction it also serializes concurrent callers on the same pair
	// where the backend supports it.
	ExistsBySlot(ctx context.Context, date time.Time, timeSlot string) (bool, error)
}

// Transactor runs fn in an all-or-nothing scope. Repository calls made with the
// context passed to fn take part in the scope; any error returned by fn aborts it.
// fn may be invoked more than once when the backend retries transient conflicts.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is the lifecycle handle of a backend.
type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Repository struct {
	Customer CustomerRepository
	Package  PackageRepository
	AddOn    AddOnRepository
	Booking  BookingRepository
	Tx       Transactor
	Store    Store
}
