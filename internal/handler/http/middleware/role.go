package middleware

import (
	"fmt"
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

// RequireSuperAdmin restricts a route to the platform role.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r).Role != string(user.RoleSuperAdmin) {
			response.HandleError(w, user.ErrSuperAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin allows client admins and super admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := user.Role(GetClaims(r).Role)
		if !user.IsElevated(role) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission gates a route on the role permission table.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := user.Role(GetClaims(r).Role)
			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Missing permission '%s'", permission))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
