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

type packageRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	if _, err := r.coll.InsertOne(ctx, pkg); err != nil {
		r.log.Error("Failed to create package", zap.Error(err), zap.String("name", pkg.Name))
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id string) (*entity.Package, error) {
	var pkg entity.Package
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID", zap.Error(err), zap.String("package_id", id))
		return nil, fmt.Errorf("failed to find package: %w", err)
	}
	return &pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.Package, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, sortByCreated)
	if err != nil {
		r.log.Error("Failed to find packages", zap.Error(err))
		return nil, fmt.Errorf("failed to find packages: %w", err)
	}

	packages, err := decodeAll[entity.Package](ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}
	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	update := bson.M{
		"$set": bson.M{
			"name":        pkg.Name,
			"description": pkg.Description,
			"price":       pkg.Price,
			"updated_at":  pkg.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateByID(ctx, pkg.ID, update)
	if err != nil {
		r.log.Error("Failed to update package", zap.Error(err), zap.String("package_id", pkg.ID))
		return fmt.Errorf("failed to update package: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete package", zap.Error(err), zap.String("package_id", id))
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type addOnRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r *addOnRepository) Create(ctx context.Context, addOn *entity.AddOn) error {
	if _, err := r.coll.InsertOne(ctx, addOn); err != nil {
		r.log.Error("Failed to create add-on", zap.Error(err), zap.String("name", addOn.Name))
		return fmt.Errorf("failed to create add-on: %w", err)
	}
	return nil
}

func (r *addOnRepository) FindByID(ctx context.Context, id string) (*entity.AddOn, error) {
	var addOn entity.AddOn
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&addOn)
	if isNoDocuments(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find add-on by ID", zap.Error(err), zap.String("add_on_id", id))
		return nil, fmt.Errorf("failed to find add-on: %w", err)
	}
	return &addOn, nil
}

func (r *addOnRepository) FindByIDs(ctx context.Context, ids []string) ([]*entity.AddOn, error) {
	if len(ids) == 0 {
		return []*entity.AddOn{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.log.Error("Failed to find add-ons by IDs", zap.Error(err), zap.Strings("add_on_ids", ids))
		return nil, fmt.Errorf("failed to find add-ons: %w", err)
	}

	addOns, err := decodeAll[entity.AddOn](ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}
	return addOns, nil
}

func (r *addOnRepository) FindAll(ctx context.Context) ([]*entity.AddOn, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, sortByCreated)
	if err != nil {
		r.log.Error("Failed to find add-ons", zap.Error(err))
		return nil, fmt.Errorf("failed to find add-ons: %w", err)
	}

	addOns, err := decodeAll[entity.AddOn](ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}
	return addOns, nil
}

func (r *addOnRepository) Update(ctx context.Context, addOn *entity.AddOn) error {
	update := bson.M{
		"$set": bson.M{
			"name":        addOn.Name,
			"description": addOn.Description,
			"price":       addOn.Price,
			"category":    addOn.Category,
			"updated_at":  addOn.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateByID(ctx, addOn.ID, update)
	if err != nil {
		r.log.Error("Failed to update add-on", zap.Error(err), zap.String("add_on_id", addOn.ID))
		return fmt.Errorf("failed to update add-on: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *addOnRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete add-on", zap.Error(err), zap.String("add_on_id", id))
		return fmt.Errorf("failed to delete add-on: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
