package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"studykit/internal/auth"
)

type stubResolver struct {
	identities map[uuid.UUID]*auth.Identity
}

func (r *stubResolver) Resolve(_ context.Context, id uuid.UUID) (*auth.Identity, error) {
	return r.identities[id], nil
}

func newTestGate(resolver auth.Resolver) *auth.Gate {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewGate(testSecret, resolver, logger)
}

func TestGateRequire(t *testing.T) {
	userID := uuid.New()
	resolver := &stubResolver{identities: map[uuid.UUID]*auth.Identity{
		userID: {ID: userID, Username: "reader"},
	}}
	gate := newTestGate(resolver)

	var gotIdentity *auth.Identity
	handler := gate.Require(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, err := auth.GenerateToken(testSecret, userID, "reader", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotIdentity == nil {
		t.Fatal("identity missing from request context")
	}
	if gotIdentity.ID != userID {
		t.Errorf("identity ID = %s, want %s", gotIdentity.ID, userID)
	}
	if gotIdentity.Username != "reader" {
		t.Errorf("identity Username = %q, want %q", gotIdentity.Username, "reader")
	}
}

func TestGateRequire_Rejections(t *testing.T) {
	userID := uuid.New()
	resolver := &stubResolver{identities: map[uuid.UUID]*auth.Identity{
		userID: {ID: userID, Username: "reader"},
	}}
	gate := newTestGate(resolver)

	validToken, err := auth.GenerateToken(testSecret, userID, "reader", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	unknownUserToken, err := auth.GenerateToken(testSecret, uuid.New(), "ghost", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token " + validToken},
		{"garbage token", "Bearer not.a.token"},
		{"token for deleted user", "Bearer " + unknownUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan := false
			handler := gate.Require(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if handlerRan {
				t.Error("protected handler ran for rejected request")
			}
		})
	}
}

func TestIdentityFrom_Absent(t *testing.T) {
	if got := auth.IdentityFrom(context.Background()); got != nil {
		t.Errorf("IdentityFrom() = %v, want nil", got)
	}
}
