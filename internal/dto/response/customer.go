package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type CustomerResponse struct {
	ID                  string    `json:"id"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number"`
	SpecialRequirements *string   `json:"special_requirements,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                  customer.ID,
		FullName:            customer.FullName,
		Email:               customer.Email,
		PhoneNumber:         customer.PhoneNumber,
		SpecialRequirements: customer.SpecialRequirements,
		CreatedAt:           customer.CreatedAt,
		UpdatedAt:           customer.UpdatedAt,
	}
}
