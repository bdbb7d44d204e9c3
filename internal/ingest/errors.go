package ingest

import (
	"errors"
	"net/http"

	"studykit/internal/generation"
)

// Pipeline errors. Messages are caller-facing; ErrUnsupportedType in
// particular is the literal body clients match on.
var (
	ErrNoInput         = errors.New("no text or file provided")
	ErrNoFile          = errors.New("No file uploaded")
	ErrUnsupportedType = errors.New("Unsupported file type")
	ErrExtraction      = errors.New("failed to extract document text")
	ErrEmptyContent    = errors.New("document contains no usable text")
)

// MapHTTPStatus converts pipeline errors to appropriate HTTP status codes.
// Input problems are the caller's fault; extraction and backend failures
// are ours.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrNoFile),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrEmptyContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrExtraction),
		errors.Is(err, generation.ErrBackend):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
