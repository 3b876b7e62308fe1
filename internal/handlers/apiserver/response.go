package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// ErrorResponse is the generic error body for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("encoding response", "error", err)
		}
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError translates the service error kinds into HTTP statuses.
// Unknown and persistence errors are logged and reported as a bare 500,
// without leaking store details to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, apperror.ErrDuplicateEmail):
		writeJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperror.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperror.ErrInvalidTransition):
		writeJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperror.ErrInvalidCredentials):
		writeJSONError(w, err.Error(), http.StatusUnauthorized)
	default:
		logger.Error("internal error", "error", err)
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// parsePageable reads the size and page query parameters, defaulting to
// the first page of 20. Page index clamping is the client's concern: the
// response always carries the total so a stale page number can be
// corrected and re-fetched.
func parsePageable(w http.ResponseWriter, r *http.Request) (pagination.Pageable, bool) {
	size, number := 20, 0
	q := r.URL.Query()
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, "invalid size", http.StatusBadRequest)
			return pagination.Pageable{}, false
		}
		size = v
	}
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, "invalid page", http.StatusBadRequest)
			return pagination.Pageable{}, false
		}
		number = v
	}
	p, err := pagination.NewPageable(size, number)
	if err != nil {
		writeServiceError(w, err)
		return pagination.Pageable{}, false
	}
	return p, true
}
