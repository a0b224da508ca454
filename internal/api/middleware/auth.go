package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/jwtauth/v5"

	"netsecurepro/internal/common/security"
	"netsecurepro/internal/domain/model"
	"netsecurepro/internal/domain/repository"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// SessionVerifier validates the signed session cookie, if one is present,
// and stores the verification result in the request context.
func SessionVerifier() func(http.Handler) http.Handler {
	return jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie)
}

// SessionUser resolves a verified session to its user record by primary-key
// lookup, once per request. Requests with no session, an invalid token or an
// identifier that no longer resolves proceed as anonymous.
func SessionUser(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user carried by the request context,
// if any.
func CurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}

// RequireAuth guards a route: anonymous callers are sent to the login page
// with the requested path preserved so they return after authenticating.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
