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

const MsgPackageMissing = "Package not found"

type PackageService interface {
	GetPackages(ctx context.Context) ([]response.PackageResponse, error)
	GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error)
	CreatePackage(ctx context.Context, req *request.PackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, packageID string, req *request.PackageUpdateRequest) (*response.PackageResponse, error)
	DeletePackage(ctx context.Context, packageID string) error
}

type packageService struct {
	repo repository.PackageRepository
	log  *zap.Logger
}

func NewPackageService(repo repository.PackageRepository, log *zap.Logger) PackageService {
	return &packageService{
		repo: repo,
		log:  log.With(zap.String("service", "package")),
	}
}

func (s *packageService) GetPackages(ctx context.Context) ([]response.PackageResponse, error) {
	packages, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get packages", zap.Error(err))
		return nil, NewInternalError("Error fetching packages", err)
	}

	result := make([]response.PackageResponse, len(packages))
	for i, p := range packages {
		result[i] = response.PackageToResponse(p)
	}
	return result, nil
}

func (s *packageService) GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error) {
	pkg, err := s.repo.FindByID(ctx, packageID)
	if err != nil {
		return nil, NewInternalError("Error fetching package", err)
	}
	if pkg == nil {
		return nil, NewNotFoundError(MsgPackageMissing)
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) CreatePackage(ctx context.Context, req *request.PackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create package validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(validationDetails(errs))
	}

	now := time.Now().UTC()
	pkg := &entity.Package{
		Base: entity.Base{
			ID:        utils.GenerateID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, NewInternalError("Error creating package", err)
	}

	s.log.Info("Package created", zap.String("package_id", pkg.ID), zap.String("name", pkg.Name))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, packageID string, req *request.PackageUpdateRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update package validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(validationDetails(errs))
	}

	pkg, err := s.repo.FindByID(ctx, packageID)
	if err != nil {
		return nil, NewInternalError("Error updating package", err)
	}
	if pkg == nil {
		return nil, NewNotFoundError(MsgPackageMissing)
	}

	// Partial update
	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	pkg.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError(MsgPackageMissing)
		}
		return nil, NewInternalError("Error updating package", err)
	}

	s.log.Info("Package updated", zap.String("package_id", packageID))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) DeletePackage(ctx context.Context, packageID string) error {
	if err := s.repo.Delete(ctx, packageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError(MsgPackageMissing)
		}
		return NewInternalError("Error deleting package", err)
	}

	s.log.Info("Package deleted", zap.String("package_id", packageID))
	return nil
}
