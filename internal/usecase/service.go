package usecase

import (
	"venue-booking/internal/data/repository"
	"venue-booking/internal/events"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Customer     CustomerService
	Package      PackageService
	AddOn        AddOnService
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(repo *repository.Repository, publisher events.Publisher, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, log)
	validator := NewBookingValidator(repo, nil, log)

	return &Service{
		Customer:     NewCustomerService(repo.Customer, log),
		Package:      NewPackageService(repo.Package, log),
		AddOn:        NewAddOnService(repo.AddOn, log),
		Availability: availability,
		Booking:      NewBookingService(repo, validator, availability, publisher, config.Booking.TxTimeout, log),
	}
}
