package middleware

import (
	"net/http"
	"strings"

	"prism/internal/auth"
	"prism/internal/httputil"
)

// Auth verifies the bearer token when one is present and stores the person
// id in the request context. Requests without a token pass through as
// anonymous: listings and public photos are readable without signing in,
// and each handler decides whether it requires an identity. A token that is
// present but invalid is rejected outright.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithPersonID(r, claims.PersonID()))
		})
	}
}
