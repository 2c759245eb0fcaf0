package wire

import (
	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePackage(r chi.Router, packageHandler *adaptor.PackageHandler) {
	r.Route("/packages", func(r chi.Router) {
		r.Get("/", packageHandler.GetPackages)
		r.Post("/", packageHandler.CreatePackage)
		r.Get("/{id}", packageHandler.GetPackage)
		r.Put("/{id}", packageHandler.UpdatePackage)
		r.Delete("/{id}", packageHandler.DeletePackage)
	})
}

func wireAddOn(r chi.Router, addOnHandler *adaptor.AddOnHandler) {
	r.Route("/add-ons", func(r chi.Router) {
		r.Get("/", addOnHandler.GetAddOns)
		r.Post("/", addOnHandler.CreateAddOn)
		r.Get("/{id}", addOnHandler.GetAddOn)
		r.Put("/{id}", addOnHandler.UpdateAddOn)
		r.Delete("/{id}", addOnHandler.DeleteAddOn)
	})
}
