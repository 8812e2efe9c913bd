package authhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/session"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

// Sessions is the part of session.Manager the handlers drive.
type Sessions interface {
	Login(ctx context.Context, email, password string) (session.Session, string, error)
	Logout(ctx context.Context, sessionID string) error
}

type Handler struct {
	Sessions Sessions
}

func NewHandler(sessions Sessions) *Handler {
	return &Handler{Sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      session.Profile `json:"user"`
}

type meResponse struct {
	User      *auth.User `json:"user"`
	ExpiresAt time.Time  `json:"expiresAt"`
	IsAdmin   bool       `json:"isAdmin"`
	IsHR      bool       `json:"isHR"`
}

// RegisterPublicRoutes mounts the routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/auth/me", h.HandleMe)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	sess, token, err := h.Sessions.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      sess.Profile,
	}, "Welcome back, "+sess.Profile.Name, reqID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if err := h.Sessions.Logout(r.Context(), sess.ID); err != nil {
		api.FromError(w, err, reqID)
		return
	}
	api.Done(w, http.StatusOK, map[string]string{"status": "logged_out"}, "You have been logged out", reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	resp := meResponse{User: user, IsAdmin: auth.IsAdmin(user), IsHR: auth.IsHR(user)}
	if sess, ok := middleware.GetSession(r.Context()); ok {
		resp.ExpiresAt = sess.ExpiresAt
	}
	api.Success(w, resp, reqID)
}
