// Package mongostore implements the repositories on MongoDB. Every collection
// keys documents by the service generated id in _id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	customersCollection = "customers"
	packagesCollection  = "packages"
	addOnsCollection    = "addons"
	bookingsCollection  = "bookings"
)

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	log          *zap.Logger
}

// NewStore binds the store to database dbName. When transactions is false the
// transactional scope runs without a session and slot exclusivity rests on the
// unique booking index alone, which suits standalone servers.
func NewStore(client *mongo.Client, dbName string, transactions bool, log *zap.Logger) *Store {
	return &Store{
		client:       client,
		db:           client.Database(dbName),
		transactions: transactions,
		log:          log.With(zap.String("repository", "mongo")),
	}
}

func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Customer: &customerRepository{coll: s.db.Collection(customersCollection), log: s.log.With(zap.String("collection", customersCollection))},
		Package:  &packageRepository{coll: s.db.Collection(packagesCollection), log: s.log.With(zap.String("collection", packagesCollection))},
		AddOn:    &addOnRepository{coll: s.db.Collection(addOnsCollection), log: s.log.With(zap.String("collection", addOnsCollection))},
		Booking:  &bookingRepository{coll: s.db.Collection(bookingsCollection), log: s.log.With(zap.String("collection", bookingsCollection))},
		Tx:       s,
		Store:    s,
	}
}

// EnsureIndexes creates the unique indexes the service relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.db.Collection(customersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}

	_, err = s.db.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_date_time_slot"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	return nil
}

// WithinTransaction runs fn inside a session transaction. The driver retries
// fn on transient transaction errors, so fn must keep store errors wrapped
// with %w for the error labels to survive.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mapWriteError(err error, duplicate error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", duplicate, err)
	}
	return err
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]*T, error) {
	defer cursor.Close(ctx)

	items := make([]*T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

var sortByCreated = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
