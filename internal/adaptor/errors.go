package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

// handleServiceError writes the envelope matching the kind of err.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch svcErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed",
			zap.Strings("errors", svcErr.Details),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, svcErr.Message, svcErr.Details)

	case usecase.KindBadRequest:
		log.Warn("Invalid input for "+operation,
			zap.String("reason", svcErr.Message),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict",
			zap.String("reason", svcErr.Message),
			zap.String("operation", operation))
		utils.ResponseConflict(w, svcErr.Message)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found",
			zap.String("reason", svcErr.Message),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, svcErr.Message)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, svcErr.Message)
	}
}

// decodeJSON reads the request body into dst and reports whether it succeeded.
// On failure the 400 response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return false
	}
	return true
}
