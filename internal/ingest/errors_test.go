package ingest_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"studykit/internal/generation"
	"studykit/internal/ingest"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			"no input error",
			ingest.ErrNoInput,
			http.StatusBadRequest,
		},
		{
			"no file error",
			ingest.ErrNoFile,
			http.StatusBadRequest,
		},
		{
			"unsupported type error",
			ingest.ErrUnsupportedType,
			http.StatusBadRequest,
		},
		{
			"empty content error",
			ingest.ErrEmptyContent,
			http.StatusBadRequest,
		},
		{
			"extraction error",
			ingest.ErrExtraction,
			http.StatusInternalServerError,
		},
		{
			"wrapped extraction error",
			fmt.Errorf("%w: parse pdf: bad xref", ingest.ErrExtraction),
			http.StatusInternalServerError,
		},
		{
			"backend error",
			generation.ErrBackend,
			http.StatusInternalServerError,
		},
		{
			"wrapped backend error",
			fmt.Errorf("%w: rpc unavailable", generation.ErrBackend),
			http.StatusInternalServerError,
		},
		{
			"unknown error",
			errors.New("unknown error"),
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ingest.MapHTTPStatus(tt.err)
			if got != tt.wantStatus {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestErrorValues(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrNoFile", ingest.ErrNoFile, "No file uploaded"},
		{"ErrUnsupportedType", ingest.ErrUnsupportedType, "Unsupported file type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("error message = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}
