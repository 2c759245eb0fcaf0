package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"venue-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", usecase.NewValidationError([]string{"Customer not found."}), http.StatusBadRequest, "Validation failed"},
		{"bad request", usecase.NewBadRequestError("Invalid add-ons: x"), http.StatusBadRequest, "Invalid add-ons: x"},
		{"conflict", usecase.NewConflictError("Time slot is not available.", nil), http.StatusConflict, "Time slot is not available."},
		{"not found", usecase.NewNotFoundError("Booking not found."), http.StatusNotFound, "Booking not found."},
		{"internal", usecase.NewInternalError("Failed to create booking", errors.New("db gone")), http.StatusInternalServerError, "Failed to create booking"},
		{"plain error", errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.wantCode, rec.Code)

			var body struct {
				Status  bool     `json:"status"`
				Message string   `json:"message"`
				Errors  []string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
			if tt.name == "validation" {
				assert.Equal(t, []string{"Customer not found."}, body.Errors)
			}
		})
	}
}
