package users_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"studykit/internal/auth"
	"studykit/internal/users"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeSystem struct {
	registered *users.User
	registErr  error
	authed     *users.User
	authErr    error
}

func (s *fakeSystem) Register(_ context.Context, cmd users.RegisterCommand) (*users.User, error) {
	if s.registErr != nil {
		return nil, s.registErr
	}
	return s.registered, nil
}

func (s *fakeSystem) Authenticate(_ context.Context, cmd users.LoginCommand) (*users.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.authed, nil
}

func (s *fakeSystem) Find(_ context.Context, id uuid.UUID) (*users.User, error) {
	return nil, users.ErrNotFound
}

func newTestHandler(sys users.System) *users.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return users.NewHandler(sys, logger, testSecret, time.Hour)
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID           uuid.UUID `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		ProfileImage string    `json:"profileImage"`
	} `json:"user"`
}

func TestRegister(t *testing.T) {
	userID := uuid.New()
	handler := newTestHandler(&fakeSystem{registered: &users.User{
		ID:           userID,
		Username:     "reader",
		Email:        "reader@example.com",
		ProfileImage: users.DefaultProfileImage("reader"),
	}})

	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"username":"reader","email":"reader@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var body authResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.User.ID != userID {
		t.Errorf("user id = %s, want %s", body.User.ID, userID)
	}
	if body.User.Username != "reader" {
		t.Errorf("username = %q, want %q", body.User.Username, "reader")
	}

	claims, err := auth.ValidateToken(testSecret, body.Token)
	if err != nil {
		t.Fatalf("returned token invalid: %v", err)
	}
	gotID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if gotID != userID {
		t.Errorf("token subject = %s, want %s", gotID, userID)
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	handler := newTestHandler(&fakeSystem{registErr: users.ErrValidation})

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler := newTestHandler(&fakeSystem{registErr: users.ErrEmailTaken})

	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"username":"reader","email":"taken@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	handler := newTestHandler(&fakeSystem{authed: &users.User{
		ID:       userID,
		Username: "reader",
		Email:    "reader@example.com",
	}})

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"reader@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body authResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token == "" {
		t.Error("login response missing token")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := newTestHandler(&fakeSystem{authErr: users.ErrInvalidCredentials})

	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"reader@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
