package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/events"
	"venue-booking/pkg/metrics"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	MsgSlotUnavailable       = "Time slot is not available."
	MsgInvalidPackage        = "Invalid package ID."
	MsgInvalidAddOnsPrefix   = "Invalid add-ons: "
	MsgSpecialReqTooLong     = "Special requirements are too long."
	MaxSpecialRequirementLen = 500

	DefaultBookingTxTimeout = 5 * time.Second
	eventPublishTimeout     = 3 * time.Second
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo         *repository.Repository
	validator    BookingValidator
	availability AvailabilityService
	publisher    events.Publisher
	txTimeout    time.Duration
	now          func() time.Time
	log          *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	validator BookingValidator,
	availability AvailabilityService,
	publisher events.Publisher,
	txTimeout time.Duration,
	log *zap.Logger,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if txTimeout <= 0 {
		txTimeout = DefaultBookingTxTimeout
	}
	return &bookingService{
		repo:         repo,
		validator:    validator,
		availability: availability,
		publisher:    publisher,
		txTimeout:    txTimeout,
		now:          time.Now,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	date, dateValid := ParseBookingDate(req.Date)

	// Validate request
	problems, err := s.validator.Validate(ctx, BookingInput{
		CustomerID: req.CustomerID,
		PackageID:  req.PackageID,
		Date:       date,
		DateValid:  dateValid,
		TimeSlot:   req.TimeSlot,
		Duration:   req.Duration,
	})
	if err != nil {
		return nil, NewInternalError("Failed to validate booking", err)
	}
	if len(problems) > 0 {
		s.log.Warn("Create booking validation failed", zap.Strings("errors", problems))
		metrics.IncBookingRejected(KindValidation.String())
		return nil, NewValidationError(problems)
	}

	timeSlot := CanonicalTimeSlot(req.TimeSlot)
	addOnIDs := uniqueIDs(req.AddOns)
	specialRequirements := ""
	if req.SpecialRequirements != nil {
		specialRequirements = *req.SpecialRequirements
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var (
		booking *entity.Booking
		pkg     *entity.Package
		addOns  []*entity.AddOn
	)

	err = s.repo.Tx.WithinTransaction(txCtx, func(ctx context.Context) error {
		// Check slot availability
		free, err := s.availability.IsSlotFree(ctx, date, timeSlot)
		if err != nil {
			return err
		}
		if !free {
			return NewConflictError(MsgSlotUnavailable, nil)
		}

		pkg, err = s.repo.Package.FindByID(ctx, req.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return NewBadRequestError(MsgInvalidPackage)
		}

		addOns, err = s.resolveAddOns(ctx, addOnIDs)
		if err != nil {
			return err
		}

		if utf8.RuneCountInString(specialRequirements) > MaxSpecialRequirementLen {
			return NewBadRequestError(MsgSpecialReqTooLong)
		}

		now := s.now().UTC()
		b := &entity.Booking{
			Base: entity.Base{
				ID:        utils.GenerateID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			CustomerID:          req.CustomerID,
			Date:                calendarDay(date),
			TimeSlot:            timeSlot,
			Duration:            int(req.Duration),
			PackageID:           pkg.ID,
			AddOnIDs:            addOnIDs,
			SpecialRequirements: specialRequirements,
			Status:              entity.BookingStatusPending,
			TotalPrice:          ComputeTotalPrice(pkg, addOns),
		}

		if err := s.repo.Booking.Create(ctx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, s.transactionError(err, req)
	}

	metrics.IncBookingCreated(string(booking.Status))
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("customer_id", booking.CustomerID),
		zap.Time("date", booking.Date),
		zap.String("time_slot", booking.TimeSlot),
		zap.Float64("total_price", booking.TotalPrice),
	)

	s.publishCreated(ctx, booking)

	expander := newBookingExpander(s.repo)
	expander.seedPackage(pkg)
	expander.seedAddOns(addOns)
	resp, err := expander.expand(ctx, booking)
	if err != nil {
		// The booking is committed; report it with what is already loaded.
		s.log.Warn("Failed to expand created booking", zap.Error(err), zap.String("booking_id", booking.ID))
		fallback := response.BookingToResponse(booking, nil, pkg, addOns)
		return &fallback, nil
	}

	return &resp, nil
}

// resolveAddOns loads every id or fails with the ids that do not exist.
func (s *bookingService) resolveAddOns(ctx context.Context, ids []string) ([]*entity.AddOn, error) {
	if len(ids) == 0 {
		return []*entity.AddOn{}, nil
	}

	found, err := s.repo.AddOn.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.AddOn, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	addOns := make([]*entity.AddOn, 0, len(ids))
	var missing []string
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		addOns = append(addOns, a)
	}

	if len(missing) > 0 {
		return nil, NewBadRequestError(MsgInvalidAddOnsPrefix + strings.Join(missing, ", "))
	}
	return addOns, nil
}

// transactionError turns whatever aborted the transaction into a service error.
func (s *bookingService) transactionError(err error, req *request.CreateBookingRequest) error {
	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
	case errors.Is(err, repository.ErrSlotTaken):
		svcErr = NewConflictError(MsgSlotUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		svcErr = NewInternalError("Booking transaction timed out", err)
	default:
		svcErr = NewInternalError("Failed to create booking", err)
	}

	fields := []zap.Field{
		zap.String("kind", svcErr.Kind.String()),
		zap.String("customer_id", req.CustomerID),
		zap.String("date", req.Date),
		zap.String("time_slot", req.TimeSlot),
	}
	if svcErr.Kind == KindInternal {
		s.log.Error("Create booking failed", append(fields, zap.Error(err))...)
	} else {
		s.log.Warn("Create booking rejected", append(fields, zap.String("reason", svcErr.Message))...)
	}

	metrics.IncBookingRejected(svcErr.Kind.String())
	return svcErr
}

func (s *bookingService) publishCreated(ctx context.Context, booking *entity.Booking) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	if err := s.publisher.PublishBookingCreated(pubCtx, booking); err != nil {
		metrics.IncEventPublishFailed(events.EventBookingCreated)
		s.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_id", booking.ID),
		)
	}
}

func (s *bookingService) GetBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, NewInternalError("Error fetching bookings", err)
	}

	expander := newBookingExpander(s.repo)
	result := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp, err := expander.expand(ctx, b)
		if err != nil {
			s.log.Error("Failed to expand booking", zap.Error(err), zap.String("booking_id", b.ID))
			return nil, NewInternalError("Error fetching bookings", err)
		}
		result = append(result, resp)
	}

	s.log.Info("Bookings retrieved", zap.Int("count", len(result)))
	return result, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, NewInternalError("Error fetching booking", err)
	}
	if booking == nil {
		return nil, NewNotFoundError("Booking not found.")
	}

	resp, err := newBookingExpander(s.repo).expand(ctx, booking)
	if err != nil {
		s.log.Error("Failed to expand booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, NewInternalError("Error fetching booking", err)
	}
	return &resp, nil
}

// uniqueIDs drops repeated ids while keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
