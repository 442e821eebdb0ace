package middleware

import (
	"net/http"

	"github.com/haulops/payroll-engine/internal/handler/http/response"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
)

// RequireManager limits a route to callers allowed to act on other employees.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if !id.IsManager() {
			response.Forbidden(w, "Manager access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
