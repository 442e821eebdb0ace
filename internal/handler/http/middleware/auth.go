package middleware

import (
	"net/http"

	"github.com/haulops/payroll-engine/internal/handler/http/response"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. It must run
// after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := jwt.IdentityFromContext(r.Context()); err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
