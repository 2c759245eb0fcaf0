package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *usecase.Error, got %T", err)
	require.Equal(t, kind, svcErr.Kind, svcErr.Error())
	return svcErr
}

func TestCreateBooking_ComputesTotalAndExpands(t *testing.T) {
	pub := &recordingPublisher{}
	f := newBookingFixture(t, pub)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1",
		PackageID:  "p1",
		Date:       tomorrow(),
		TimeSlot:   "10:00",
		Duration:   2,
		AddOns:     []string{"a1", "a2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 135.0, resp.TotalPrice)
	assert.Equal(t, "pending", string(resp.Status))
	assert.Equal(t, "10:00", resp.TimeSlot)
	assert.Equal(t, 2, resp.Duration)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Ada Lovelace", resp.Customer.FullName)
	require.NotNil(t, resp.Package)
	assert.Equal(t, "Standard", resp.Package.Name)
	require.Len(t, resp.AddOns, 2)
	assert.Equal(t, "Cake", resp.AddOns[0].Name)
	assert.Equal(t, "Balloons", resp.AddOns[1].Name)

	require.Len(t, pub.published, 1)
	assert.Equal(t, resp.ID, pub.published[0].ID)
}

func TestCreateBooking_NoAddOnsChargesPackageOnly(t *testing.T) {
	f := newBookingFixture(t, nil)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1",
		PackageID:  "p1",
		Date:       tomorrow(),
		TimeSlot:   "11:00",
		Duration:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.TotalPrice)
	assert.Empty(t, resp.AddOns)
}

func TestCreateBooking_ValidationCollectsEveryProblem(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "missing",
		PackageID:  "missing",
		Date:       "2001-01-01",
		TimeSlot:   "10:00",
		Duration:   2,
	})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, []string{MsgCustomerNotFound, MsgPackageNotFound, MsgDateInPast}, svcErr.Details)

	_, err = f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1",
		PackageID:  "p1",
		Date:       "not-a-date",
		TimeSlot:   "25:00",
		Duration:   1.5,
	})
	svcErr = requireKind(t, err, KindValidation)
	assert.Equal(t, []string{MsgInvalidDate, MsgInvalidTimeSlot, MsgInvalidDuration}, svcErr.Details)

	bookings, err := f.repo.Booking.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBooking_InvalidAddOnPersistsNothing(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1",
		PackageID:  "p1",
		Date:       tomorrow(),
		TimeSlot:   "10:00",
		Duration:   2,
		AddOns:     []string{"a1", "ghost"},
	})
	svcErr := requireKind(t, err, KindBadRequest)
	assert.Equal(t, MsgInvalidAddOnsPrefix+"ghost", svcErr.Message)

	bookings, err := f.repo.Booking.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBooking_SpecialRequirementsTooLong(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:          "c1",
		PackageID:           "p1",
		Date:                tomorrow(),
		TimeSlot:            "10:00",
		Duration:            2,
		SpecialRequirements: strPtr(strings.Repeat("x", MaxSpecialRequirementLen+1)),
	})
	svcErr := requireKind(t, err, KindBadRequest)
	assert.Equal(t, MsgSpecialReqTooLong, svcErr.Message)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:          "c1",
		PackageID:           "p1",
		Date:                tomorrow(),
		TimeSlot:            "10:00",
		Duration:            2,
		SpecialRequirements: strPtr(strings.Repeat("é", MaxSpecialRequirementLen)),
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", MaxSpecialRequirementLen), resp.SpecialRequirements)
}

func TestCreateBooking_SameSlotConflicts(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()
	date := tomorrow()

	_, err := f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: date, TimeSlot: "9:00", Duration: 1,
	})
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: date, TimeSlot: "09:00", Duration: 1,
	})
	svcErr := requireKind(t, err, KindConflict)
	assert.Equal(t, MsgSlotUnavailable, svcErr.Message)

	// A different slot on the same day is still free.
	_, err = f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: date, TimeSlot: "10:00", Duration: 1,
	})
	require.NoError(t, err)
}

func TestCreateBooking_ConcurrentRequestsForOneSlot(t *testing.T) {
	f := newBookingFixture(t, nil)
	date := tomorrow()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
				CustomerID: "c1", PackageID: "p1", Date: date, TimeSlot: "12:00", Duration: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case KindOf(err) == KindConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	bookings, err := f.repo.Booking.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestCreateBooking_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	f := newBookingFixture(t, pub)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: "10:00", Duration: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, pub.published, 1)
}

func TestBookingPriceIsFixedAtCreation(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()
	log := zap.NewNop()

	created, err := f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: "10:00", Duration: 2,
		AddOns: []string{"a1"},
	})
	require.NoError(t, err)
	require.Equal(t, 120.0, created.TotalPrice)

	price := 99.0
	_, err = NewAddOnService(f.repo.AddOn, log).UpdateAddOn(ctx, "a1", &request.AddOnUpdateRequest{Price: &price})
	require.NoError(t, err)

	got, err := f.service.GetBookingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.TotalPrice)
	require.Len(t, got.AddOns, 1)
	assert.Equal(t, 99.0, got.AddOns[0].Price)
}

func TestDeletedReferencesExpandToNull(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()
	log := zap.NewNop()

	created, err := f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: "10:00", Duration: 2,
		AddOns: []string{"a1", "a2"},
	})
	require.NoError(t, err)

	require.NoError(t, NewCustomerService(f.repo.Customer, log).DeleteCustomer(ctx, "c1"))
	require.NoError(t, NewAddOnService(f.repo.AddOn, log).DeleteAddOn(ctx, "a2"))

	got, err := f.service.GetBookingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Customer)
	require.NotNil(t, got.Package)
	require.Len(t, got.AddOns, 1)
	assert.Equal(t, "a1", got.AddOns[0].ID)

	list, err := f.service.GetBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Customer)
}

func TestGetBookings(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()

	list, err := f.service.GetBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []response.BookingResponse{}, list)

	for _, slot := range []string{"09:00", "10:00"} {
		_, err := f.service.CreateBooking(ctx, &request.CreateBookingRequest{
			CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: slot, Duration: 1,
		})
		require.NoError(t, err)
	}

	list, err = f.service.GetBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGetBookingByID_NotFound(t *testing.T) {
	f := newBookingFixture(t, nil)

	_, err := f.service.GetBookingByID(context.Background(), "nope")
	requireKind(t, err, KindNotFound)
}

func TestAvailability_ShrinksAfterBooking(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()
	availability := NewAvailabilityService(f.repo, zap.NewNop())

	date, err := utils.ParseDate(tomorrow())
	require.NoError(t, err)

	slots, err := availability.ListAvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM"}, slots)

	_, err = f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: "9:00", Duration: 1,
	})
	require.NoError(t, err)

	slots, err = availability.ListAvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "11:00 AM", "12:00 PM"}, slots)

	// Other days are unaffected.
	slots, err = availability.ListAvailableSlots(ctx, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestCanonicalTimeSlot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9:00", "09:00"},
		{"09:00", "09:00"},
		{"23:59", "23:59"},
		{"24:00", "24:00"},
		{"9 AM", "9 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalTimeSlot(tt.in))
		})
	}
}

func TestUniqueIDsKeepsOrderAndBlanks(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, uniqueIDs([]string{"a", "", "a", "b", ""}))
	assert.Equal(t, []string{}, uniqueIDs(nil))
}

func TestCreateBooking_TimestampHoldsWholeDay(t *testing.T) {
	f := newBookingFixture(t, nil)
	ctx := context.Background()
	day := tomorrow()

	created, err := f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: day + "T10:00:00Z", TimeSlot: "10:00", Duration: 1,
	})
	require.NoError(t, err)

	date, err := utils.ParseDate(day)
	require.NoError(t, err)
	assert.True(t, created.Date.Equal(date), "stored date %s", created.Date)

	slots, err := NewAvailabilityService(f.repo, zap.NewNop()).ListAvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "11:00 AM", "12:00 PM"}, slots)

	_, err = f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: day, TimeSlot: "10:00", Duration: 1,
	})
	requireKind(t, err, KindConflict)

	_, err = f.service.CreateBooking(ctx, &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: day + "T18:45:00+00:00", TimeSlot: "10:00", Duration: 1,
	})
	requireKind(t, err, KindConflict)
}

type blockingAvailability struct {
	AvailabilityService
}

func (blockingAvailability) IsSlotFree(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func TestCreateBooking_TransactionTimeout(t *testing.T) {
	f := newBookingFixture(t, nil)
	log := zap.NewNop()
	svc := NewBookingService(f.repo, NewBookingValidator(f.repo, nil, log), blockingAvailability{}, nil, 20*time.Millisecond, log)

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID: "c1", PackageID: "p1", Date: tomorrow(), TimeSlot: "10:00", Duration: 1,
	})
	svcErr := requireKind(t, err, KindInternal)
	assert.Equal(t, "Booking transaction timed out", svcErr.Message)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	bookings, err := f.repo.Booking.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
