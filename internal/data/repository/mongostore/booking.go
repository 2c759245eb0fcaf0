package mongostore

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type bookingRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.AddOnIDs == nil {
		booking.AddOnIDs = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", booking.CustomerID),
			zap.Time("date", booking.Date),
			zap.String("time_slot", booking.TimeSlot),
		)
		return fmt.Errorf("failed to create booking: %w", mapWriteError(err, repository.ErrSlotTaken))
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id))
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *bookingRepository) FindByDate(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *bookingRepository) ExistsBySlot(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"date": date, "time_slot": timeSlot})
	if err != nil {
		r.log.Error("Failed to check slot",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("time_slot", timeSlot),
		)
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return count > 0, nil
}

func (r *bookingRepository) find(ctx context.Context, filter bson.M) ([]*entity.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, sortByCreated)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings, err := decodeAll[entity.Booking](ctx, cursor)
	if err != nil {
		r.log.Error("Failed to decode bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	r.log.Debug("Bookings found", zap.Int("count", len(bookings)))
	return bookings, nil
}
