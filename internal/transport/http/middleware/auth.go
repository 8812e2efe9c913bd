package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/session"
	"hrportal/internal/requestctx"
	"hrportal/internal/transport/http/api"
)

type ctxKey string

const (
	ctxKeyUser    ctxKey = "user"
	ctxKeySession ctxKey = "session"
)

// Hydrator restores the session behind a bearer token.
type Hydrator interface {
	Hydrate(ctx context.Context, token string) (*auth.User, session.Session, error)
}

// Auth attaches the session user when the request carries a valid bearer
// token. Requests without one continue anonymously and guards decide later.
func Auth(sessions Hydrator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, sess, err := sessions.Hydrate(r.Context(), token)
			switch {
			case err == nil:
			case staleToken(err):
				next.ServeHTTP(w, r)
				return
			default:
				slog.WarnContext(r.Context(), "session lookup failed", "err", err)
				api.Fail(w, http.StatusInternalServerError, "internal_error", "session lookup failed", GetRequestID(r.Context()))
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = context.WithValue(ctx, ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// staleToken reports errors that only mean the caller is not signed in.
func staleToken(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, session.ErrNotFound) ||
		errors.Is(err, session.ErrExpired)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithUser stores user in ctx for GetUser and the log handler.
func WithUser(ctx context.Context, user *auth.User) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUser, user)
	if user != nil {
		ctx = requestctx.WithUserID(ctx, user.ID)
	}
	return ctx
}

func GetUser(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(*auth.User)
	return user, ok && user != nil
}

func GetSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(session.Session)
	return sess, ok
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
