package adaptor

import (
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service usecase.PackageService
	log     *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		log:     log.With(zap.String("handler", "package")),
	}
}

// GetPackages handles GET /api/packages
func (h *PackageHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.GetPackages(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get packages")
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// GetPackage handles GET /api/packages/{id}
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.GetPackageByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get package")
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}

// CreatePackage handles POST /api/packages
func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.PackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create package")
		return
	}

	utils.ResponseCreated(w, "Package created successfully", pkg)
}

// UpdatePackage handles PUT /api/packages/{id}
func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.PackageUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update package")
		return
	}

	utils.ResponseSuccess(w, "Package updated successfully", pkg)
}

// DeletePackage handles DELETE /api/packages/{id}
func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePackage(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete package")
		return
	}

	utils.ResponseSuccess(w, "Package deleted successfully", nil)
}
