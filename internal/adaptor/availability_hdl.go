package adaptor

import (
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	req := request.AvailabilityRequest{Date: r.URL.Query().Get("date")}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date. Use YYYY-MM-DD or RFC 3339.", nil)
		return
	}

	slots, err := h.service.ListAvailableSlots(r.Context(), date)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		Date:           req.Date,
		AvailableSlots: slots,
	})
}
