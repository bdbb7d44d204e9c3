package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"studykit/internal/auth"
	"studykit/pkg/handlers"
	"studykit/pkg/routes"
)

// Handler provides HTTP endpoints for registration and login.
type Handler struct {
	sys      System
	logger   *slog.Logger
	secret   []byte
	tokenTTL time.Duration
}

// NewHandler creates an account handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		sys:      sys,
		logger:   logger.With("handler", "users"),
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Routes returns the auth endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/auth",
		Description: "Account registration and login",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login},
		},
	}
}

type userPayload struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	user, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	user, err := h.sys.Authenticate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, user *User) {
	token, err := auth.GenerateToken(h.secret, user.ID, user.Username, h.tokenTTL)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, status, authResponse{
		Token: token,
		User: userPayload{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			ProfileImage: user.ProfileImage,
		},
	})
}
