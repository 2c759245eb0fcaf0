package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type BookingCustomer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type BookingPackage struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type BookingAddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookingResponse carries the referenced records inline. Customer and Package
// are null when the record was deleted after the booking was made.
type BookingResponse struct {
	ID                  string               `json:"id"`
	Customer            *BookingCustomer     `json:"customer"`
	Date                time.Time            `json:"date"`
	TimeSlot            string               `json:"time_slot"`
	Duration            int                  `json:"duration"`
	Package             *BookingPackage      `json:"package"`
	AddOns              []BookingAddOn       `json:"add_ons"`
	SpecialRequirements string               `json:"special_requirements,omitempty"`
	Status              entity.BookingStatus `json:"status"`
	TotalPrice          float64              `json:"total_price"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, customer *entity.Customer, pkg *entity.Package, addOns []*entity.AddOn) BookingResponse {
	resp := BookingResponse{
		ID:                  booking.ID,
		Date:                booking.Date.UTC(),
		TimeSlot:            booking.TimeSlot,
		Duration:            booking.Duration,
		AddOns:              make([]BookingAddOn, 0, len(addOns)),
		SpecialRequirements: booking.SpecialRequirements,
		Status:              booking.Status,
		TotalPrice:          booking.TotalPrice,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}

	if customer != nil {
		resp.Customer = &BookingCustomer{
			ID:       customer.ID,
			FullName: customer.FullName,
			Email:    customer.Email,
		}
	}
	if pkg != nil {
		resp.Package = &BookingPackage{
			ID:    pkg.ID,
			Name:  pkg.Name,
			Price: pkg.Price,
		}
	}
	for _, a := range addOns {
		resp.AddOns = append(resp.AddOns, BookingAddOn{ID: a.ID, Name: a.Name, Price: a.Price})
	}

	return resp
}
