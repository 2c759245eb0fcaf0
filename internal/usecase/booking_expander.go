package usecase

import (
	"context"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/response"
)

// bookingExpander resolves the records a booking references. Lookups are
// memoized so listing many bookings costs one query per distinct record.
// Records deleted since the booking was made resolve to nil.
type bookingExpander struct {
	repo      *repository.Repository
	customers map[string]*entity.Customer
	packages  map[string]*entity.Package
	addOns    map[string]*entity.AddOn
}

func newBookingExpander(repo *repository.Repository) *bookingExpander {
	return &bookingExpander{
		repo:      repo,
		customers: make(map[string]*entity.Customer),
		packages:  make(map[string]*entity.Package),
		addOns:    make(map[string]*entity.AddOn),
	}
}

func (e *bookingExpander) seedPackage(pkg *entity.Package) {
	if pkg != nil {
		e.packages[pkg.ID] = pkg
	}
}

func (e *bookingExpander) seedAddOns(addOns []*entity.AddOn) {
	for _, a := range addOns {
		e.addOns[a.ID] = a
	}
}

func (e *bookingExpander) expand(ctx context.Context, b *entity.Booking) (response.BookingResponse, error) {
	customer, err := e.customer(ctx, b.CustomerID)
	if err != nil {
		return response.BookingResponse{}, err
	}

	pkg, err := e.pkg(ctx, b.PackageID)
	if err != nil {
		return response.BookingResponse{}, err
	}

	addOns, err := e.addOnList(ctx, b.AddOnIDs)
	if err != nil {
		return response.BookingResponse{}, err
	}

	return response.BookingToResponse(b, customer, pkg, addOns), nil
}

func (e *bookingExpander) customer(ctx context.Context, id string) (*entity.Customer, error) {
	if c, ok := e.customers[id]; ok {
		return c, nil
	}
	c, err := e.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.customers[id] = c
	return c, nil
}

func (e *bookingExpander) pkg(ctx context.Context, id string) (*entity.Package, error) {
	if p, ok := e.packages[id]; ok {
		return p, nil
	}
	p, err := e.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.packages[id] = p
	return p, nil
}

func (e *bookingExpander) addOnList(ctx context.Context, ids []string) ([]*entity.AddOn, error) {
	var unknown []string
	for _, id := range ids {
		if _, ok := e.addOns[id]; !ok {
			unknown = append(unknown, id)
		}
	}

	if len(unknown) > 0 {
		found, err := e.repo.AddOn.FindByIDs(ctx, unknown)
		if err != nil {
			return nil, err
		}
		for _, id := range unknown {
			e.addOns[id] = nil
		}
		for _, a := range found {
			e.addOns[a.ID] = a
		}
	}

	addOns := make([]*entity.AddOn, 0, len(ids))
	for _, id := range ids {
		if a := e.addOns[id]; a != nil {
			addOns = append(addOns, a)
		}
	}
	return addOns, nil
}
