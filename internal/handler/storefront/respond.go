package storefront

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode response", "error", err)
		}
	}
}

// errorBody is the JSON error payload.
type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError maps a domain error to an HTTP response.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "Validation failed",
			Fields:  fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	case domain.EUNAUTHORIZED:
		status = http.StatusUnauthorized
	case domain.EPAYMENT:
		status = http.StatusPaymentRequired
	case domain.EUNAVAILABLE:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, errorBody{Message: domain.ErrorMessage(err)})
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("handler.decodeBody", "invalid request body")
	}
	return nil
}
