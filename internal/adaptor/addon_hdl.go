package adaptor

import (
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AddOnHandler struct {
	service usecase.AddOnService
	log     *zap.Logger
}

func NewAddOnHandler(service usecase.AddOnService, log *zap.Logger) *AddOnHandler {
	return &AddOnHandler{
		service: service,
		log:     log.With(zap.String("handler", "add_on")),
	}
}

// GetAddOns handles GET /api/add-ons
func (h *AddOnHandler) GetAddOns(w http.ResponseWriter, r *http.Request) {
	addOns, err := h.service.GetAddOns(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get add-ons")
		return
	}

	utils.ResponseSuccess(w, "success", addOns)
}

// GetAddOn handles GET /api/add-ons/{id}
func (h *AddOnHandler) GetAddOn(w http.ResponseWriter, r *http.Request) {
	addOn, err := h.service.GetAddOnByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get add-on")
		return
	}

	utils.ResponseSuccess(w, "success", addOn)
}

// CreateAddOn handles POST /api/add-ons
func (h *AddOnHandler) CreateAddOn(w http.ResponseWriter, r *http.Request) {
	var req request.AddOnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	addOn, err := h.service.CreateAddOn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create add-on")
		return
	}

	utils.ResponseCreated(w, "Add-on created successfully", addOn)
}

// UpdateAddOn handles PUT /api/add-ons/{id}
func (h *AddOnHandler) UpdateAddOn(w http.ResponseWriter, r *http.Request) {
	var req request.AddOnUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	addOn, err := h.service.UpdateAddOn(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update add-on")
		return
	}

	utils.ResponseSuccess(w, "Add-on updated successfully", addOn)
}

// DeleteAddOn handles DELETE /api/add-ons/{id}
func (h *AddOnHandler) DeleteAddOn(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAddOn(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete add-on")
		return
	}

	utils.ResponseSuccess(w, "Add-on deleted successfully", nil)
}
