package request

// CreateBookingRequest is validated by the booking validator rather than by
// struct tags so every problem is reported in one response.
type CreateBookingRequest struct {
	CustomerID          string   `json:"customerId"`
	Date                string   `json:"date"`
	TimeSlot            string   `json:"timeSlot"`
	Duration            float64  `json:"duration"`
	PackageID           string   `json:"packageId"`
	AddOns              []string `json:"addOns"`
	SpecialRequirements *string  `json:"specialRequirements,omitempty"`
}

type AvailabilityRequest struct {
	Date string `json:"date" validate:"required"`
}
