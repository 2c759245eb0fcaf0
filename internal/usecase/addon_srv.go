package usecase

import (
	"context"
	"errors"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const MsgAddOnMissing = "Add-on not found"

type AddOnService interface {
	GetAddOns(ctx context.Context) ([]response.AddOnResponse, error)
	GetAddOnByID(ctx context.Context, addOnID string) (*response.AddOnResponse, error)
	CreateAddOn(ctx context.Context, req *request.AddOnRequest) (*response.AddOnResponse, error)
	// UpdateAddOn changes name and price only. Bookings keep the total they were created with.
	UpdateAddOn(ctx context.Context, addOnID string, req *request.AddOnUpdateRequest) (*response.AddOnResponse, error)
	DeleteAddOn(ctx context.Context, addOnID string) error
}

type addOnService struct {
	repo repository.AddOnRepository
	log  *zap.Logger
}

func NewAddOnService(repo repository.AddOnRepository, log *zap.Logger) AddOnService {
	return &addOnService{
		repo: repo,
		log:  log.With(zap.String("service", "add_on")),
	}
}

func (s *addOnService) GetAddOns(ctx context.Context) ([]response.AddOnResponse, error) {
	addOns, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get add-ons", zap.Error(err))
		return nil, NewInternalError("Error fetching add-ons", err)
	}

	result := make([]response.AddOnResponse, len(addOns))
	for i, a := range addOns {
		result[i] = response.AddOnToResponse(a)
	}
	return result, nil
}

func (s *addOnService) GetAddOnByID(ctx context.Context, addOnID string) (*response.AddOnResponse, error) {
	addOn, err := s.repo.FindByID(ctx, addOnID)
	if err != nil {
		return nil, NewInternalError("Error fetching add-on", err)
	}
	if addOn == nil {
		return nil, NewNotFoundError(MsgAddOnMissing)
	}

	resp := response.AddOnToResponse(addOn)
	return &resp, nil
}

func (s *addOnService) CreateAddOn(ctx context.Context, req *request.AddOnRequest) (*response.AddOnResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create add-on validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(validationDetails(errs))
	}

	now := time.Now().UTC()
	addOn := &entity.AddOn{
		Base: entity.Base{
			ID:        utils.GenerateID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    entity.AddOnCategory(req.Category),
	}

	if err := s.repo.Create(ctx, addOn); err != nil {
		return nil, NewInternalError("Error creating add-on", err)
	}

	s.log.Info("Add-on created", zap.String("add_on_id", addOn.ID), zap.String("category", req.Category))

	resp := response.AddOnToResponse(addOn)
	return &resp, nil
}

func (s *addOnService) UpdateAddOn(ctx context.Context, addOnID string, req *request.AddOnUpdateRequest) (*response.AddOnResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update add-on validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(validationDetails(errs))
	}

	addOn, err := s.repo.FindByID(ctx, addOnID)
	if err != nil {
		return nil, NewInternalError("Error updating add-on", err)
	}
	if addOn == nil {
		return nil, NewNotFoundError(MsgAddOnMissing)
	}

	if req.Name != nil {
		addOn.Name = *req.Name
	}
	if req.Price != nil {
		addOn.Price = *req.Price
	}
	addOn.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, addOn); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(MsgAddOnMissing)
		}
		return nil, NewInternalError("Error updating add-on", err)
	}

	s.log.Info("Add-on updated", zap.String("add_on_id", addOnID))

	resp := response.AddOnToResponse(addOn)
	return &resp, nil
}

func (s *addOnService) DeleteAddOn(ctx context.Context, addOnID string) error {
	if err := s.repo.Delete(ctx, addOnID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError(MsgAddOnMissing)
		}
		return NewInternalError("Error deleting add-on", err)
	}

	s.log.Info("Add-on deleted", zap.String("add_on_id", addOnID))
	return nil
}
