package adaptor

import (
	"venue-booking/internal/data/repository"
	"venue-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Customer     *CustomerHandler
	Package      *PackageHandler
	AddOn        *AddOnHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Health       *HealthHandler
}

func NewHandler(service *usecase.Service, store repository.Store, log *zap.Logger) *Handler {
	return &Handler{
		Customer:     NewCustomerHandler(service.Customer, log),
		Package:      NewPackageHandler(service.Package, log),
		AddOn:        NewAddOnHandler(service.AddOn, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Health:       NewHealthHandler(store, log),
	}
}
