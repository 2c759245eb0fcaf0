package mongostore

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type customerRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("failed to create customer: %w", mapWriteError(err, repository.ErrDuplicateKey))
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *customerRepository) findOne(ctx context.Context, filter bson.M) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.coll.FindOne(ctx, filter).Decode(&customer)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, sortByCreated)
	if err != nil {
		r.log.Error("Failed to find customers", zap.Error(err))
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}

	customers, err := decodeAll[entity.Customer](ctx, cursor)
	if err != nil {
		r.log.Error("Failed to decode customers", zap.Error(err))
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	update := bson.M{
		"$set": bson.M{
			"full_name":            customer.FullName,
			"email":                customer.Email,
			"phone_number":         customer.PhoneNumber,
			"special_requirements": customer.SpecialRequirements,
			"updated_at":           customer.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateByID(ctx, customer.ID, update)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID),
		)
		return fmt.Errorf("failed to update customer: %w", mapWriteError(err, repository.ErrDuplicateKey))
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", id))
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
