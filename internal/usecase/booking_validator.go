package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"venue-booking/internal/data/repository"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgCustomerNotFound = "Customer not found."
	MsgPackageNotFound  = "Package not found."
	MsgDateInPast       = "Booking date cannot be in the past."
	MsgInvalidDate      = "Invalid booking date."
	MsgInvalidTimeSlot  = "Invalid time slot format."
	MsgInvalidDuration  = "Duration must be a positive integer."
)

var timeSlotPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// BookingInput is a booking request after its date has been parsed.
// DateValid is false when the raw date could not be parsed.
type BookingInput struct {
	CustomerID string
	PackageID  string
	Date       time.Time
	DateValid  bool
	TimeSlot   string
	Duration   float64
}

// BookingValidator checks a booking request against the stored records
// without modifying anything.
type BookingValidator interface {
	// Validate returns every problem found; an empty slice means the input is valid.
	// A non-nil error means a lookup failed and nothing can be said about validity.
	Validate(ctx context.Context, in BookingInput) ([]string, error)
}

type bookingValidator struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewBookingValidator(repo *repository.Repository, now func() time.Time, log *zap.Logger) BookingValidator {
	if now == nil {
		now = time.Now
	}
	return &bookingValidator{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "booking_validator")),
	}
}

func (v *bookingValidator) Validate(ctx context.Context, in BookingInput) ([]string, error) {
	errs := make([]string, 0)

	customer, err := v.repo.Customer.FindByID(ctx, in.CustomerID)
	if err != nil {
		v.log.Error("Failed to look up customer", zap.Error(err), zap.String("customer_id", in.CustomerID))
		return nil, fmt.Errorf("validate customer: %w", err)
	}
	if customer == nil {
		errs = append(errs, MsgCustomerNotFound)
	}

	pkg, err := v.repo.Package.FindByID(ctx, in.PackageID)
	if err != nil {
		v.log.Error("Failed to look up package", zap.Error(err), zap.String("package_id", in.PackageID))
		return nil, fmt.Errorf("validate package: %w", err)
	}
	if pkg == nil {
		errs = append(errs, MsgPackageNotFound)
	}

	switch {
	case !in.DateValid:
		errs = append(errs, MsgInvalidDate)
	case in.Date.Before(v.now()):
		errs = append(errs, MsgDateInPast)
	}

	if !timeSlotPattern.MatchString(in.TimeSlot) {
		errs = append(errs, MsgInvalidTimeSlot)
	}

	if !isPositiveInteger(in.Duration) {
		errs = append(errs, MsgInvalidDuration)
	}

	return errs, nil
}

func isPositiveInteger(f float64) bool {
	return f > 0 && f == math.Trunc(f) && f <= math.MaxInt32
}

// ParseBookingDate wraps utils.ParseDate for the validator input.
func ParseBookingDate(raw string) (time.Time, bool) {
	t, err := utils.ParseDate(raw)
	return t, err == nil
}

// CanonicalTimeSlot zero pads the hour of a valid "H:MM" slot. Invalid input is
// returned unchanged.
func CanonicalTimeSlot(slot string) string {
	if !timeSlotPattern.MatchString(slot) {
		return slot
	}
	if len(slot) == 4 {
		return "0" + slot
	}
	return slot
}
