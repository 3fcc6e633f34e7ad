package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/liquicity/transferd/internal/adapter/http/dto"
	"github.com/liquicity/transferd/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var unsupportedJurisdiction *domain.UnsupportedJurisdictionError

	switch {
	case errors.Is(err, domain.ErrTransferNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrInvalidCountryCode),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrAmountPrecision),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedJurisdiction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
