package books

import (
	"errors"
	"net/http"
)

// Domain errors for book operations.
var (
	ErrNotFound   = errors.New("book not found")
	ErrValidation = errors.New("invalid book")
	ErrNotOwner   = errors.New("unauthorized")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotOwner):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
