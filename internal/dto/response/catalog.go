package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type PackageResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddOnResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Category    entity.AddOnCategory `json:"category"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

// Helper converters
func PackageToResponse(pkg *entity.Package) PackageResponse {
	return PackageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
		CreatedAt:   pkg.CreatedAt,
		UpdatedAt:   pkg.UpdatedAt,
	}
}

func AddOnToResponse(addOn *entity.AddOn) AddOnResponse {
	return AddOnResponse{
		ID:          addOn.ID,
		Name:        addOn.Name,
		Description: addOn.Description,
		Price:       addOn.Price,
		Category:    addOn.Category,
		CreatedAt:   addOn.CreatedAt,
		UpdatedAt:   addOn.UpdatedAt,
	}
}
