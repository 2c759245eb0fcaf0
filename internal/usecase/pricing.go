package usecase

import (
	"venue-booking/internal/data/entity"
)

// ComputeTotalPrice adds the package price and every add-on price. The result
// is stored on the booking and never recomputed.
func ComputeTotalPrice(pkg *entity.Package, addOns []*entity.AddOn) float64 {
	total := pkg.Price
	for _, a := range addOns {
		total += a.Price
	}
	return total
}
