package middleware

import (
	"net/http"

	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
)

// RequireAccess lets the request through only when guard admits the session
// user. Anonymous requests get 401 and users lacking the role or permissions
// get 403 with the guard's message as the notice.
func RequireAccess(guard auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := GetUser(r.Context())
			if err := guard.Check(user); err != nil {
				api.FromError(w, err, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
