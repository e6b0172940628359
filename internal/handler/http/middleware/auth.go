package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Claims is the identity carried by an access token, as handlers consume it.
type Claims struct {
	UserID     string
	EmployeeID string
	ClientID   string
	Role       string
}

// GetClaims pulls the identity out of the request context. The zero value
// comes back when the token is absent or malformed; AuthRequired keeps those
// requests out of protected routes.
func GetClaims(r *http.Request) Claims {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Claims{}
	}

	c := Claims{}
	if v, ok := claims["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := claims["employee_id"].(string); ok {
		c.EmployeeID = v
	}
	if v, ok := claims["client_id"].(string); ok {
		c.ClientID = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = v
	}
	return c
}
