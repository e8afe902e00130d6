package middleware

import (
	"net/http"

	"github.com/casatartufo/tartufo/pkg/response"
	"github.com/casatartufo/tartufo/pkg/session"
)

// RequireAuth gates protected routes: if the session carries no user_id the
// request is rejected with 401 before any business logic runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)

		if _, ok := sess.GetUint("user_id"); !ok {
			response.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID resolves the authenticated user's ID from the request session.
// Behind RequireAuth the second return is always true.
func UserID(r *http.Request) (uint, bool) {
	return session.FromCtx(r).GetUint("user_id")
}
