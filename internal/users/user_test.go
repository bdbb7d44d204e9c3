package users_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"studykit/internal/users"
)

func TestRegisterCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     users.RegisterCommand
		wantErr bool
	}{
		{
			"valid command",
			users.RegisterCommand{Username: "reader", Email: "reader@example.com", Password: "secret1"},
			false,
		},
		{
			"missing username",
			users.RegisterCommand{Email: "reader@example.com", Password: "secret1"},
			true,
		},
		{
			"missing email",
			users.RegisterCommand{Username: "reader", Password: "secret1"},
			true,
		},
		{
			"missing password",
			users.RegisterCommand{Username: "reader", Email: "reader@example.com"},
			true,
		},
		{
			"short password",
			users.RegisterCommand{Username: "reader", Email: "reader@example.com", Password: "12345"},
			true,
		},
		{
			"short username",
			users.RegisterCommand{Username: "ab", Email: "reader@example.com", Password: "secret1"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, users.ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestDefaultProfileImage(t *testing.T) {
	got := users.DefaultProfileImage("reader")
	if !strings.Contains(got, "seed=reader") {
		t.Errorf("DefaultProfileImage() = %q, want seed in URL", got)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", users.ErrValidation, http.StatusBadRequest},
		{"wrapped validation error", fmt.Errorf("register: %w", users.ErrValidation), http.StatusBadRequest},
		{"email taken", users.ErrEmailTaken, http.StatusBadRequest},
		{"username taken", users.ErrUsernameTaken, http.StatusBadRequest},
		{"invalid credentials", users.ErrInvalidCredentials, http.StatusBadRequest},
		{"not found", users.ErrNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := users.MapHTTPStatus(tt.err)
			if got != tt.wantStatus {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}
