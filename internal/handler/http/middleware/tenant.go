package middleware

import (
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

// RequireTenant rejects tokens without a client scope. Super admin tokens
// carry no client_id and must use the cross-tenant routes instead.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r).ClientID == "" {
			response.HandleError(w, user.ErrClientIDRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
