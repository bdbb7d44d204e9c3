package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"studykit/pkg/handlers"
)

// ErrUnauthorized is the caller-facing identity gate rejection.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the resolved principal behind a verified bearer credential.
// It lives in the request scope and is never persisted beyond it.
type Identity struct {
	ID           uuid.UUID
	Username     string
	ProfileImage string
}

// Resolver looks up the identity behind a token subject. Tokens that
// outlive their user resolve to nothing and are rejected.
type Resolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*Identity, error)
}

type identityKey struct{}

// IdentityFrom retrieves the resolved Identity from the context, or nil if absent.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// Gate verifies bearer credentials and resolves them to caller identities.
type Gate struct {
	secret   []byte
	resolver Resolver
	logger   *slog.Logger
}

// NewGate creates an identity gate with the given signing secret and resolver.
func NewGate(secret []byte, resolver Resolver, logger *slog.Logger) *Gate {
	return &Gate{
		secret:   secret,
		resolver: resolver,
		logger:   logger.With("system", "auth"),
	}
}

// Require wraps a handler so it only runs for requests carrying a valid
// bearer token that resolves to a known user. Everything else is rejected
// with 401 before the handler executes.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			handlers.RespondError(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		claims, err := ValidateToken(g.secret, tokenStr)
		if err != nil {
			g.logger.Debug("token validation failed", "error", err)
			handlers.RespondError(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			handlers.RespondError(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		identity, err := g.resolver.Resolve(r.Context(), userID)
		if err != nil || identity == nil {
			handlers.RespondError(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
