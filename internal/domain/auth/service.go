package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, string, int64, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, string, int64, error)
	Logout(ctx context.Context, refreshToken string) error

	// ForgotPassword issues a reset token and emails it. Unknown emails
	// succeed silently so the endpoint does not leak account existence.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Google OAuth login
	GoogleRedirectURL(userAgent string) string
	GoogleCallback(ctx context.Context, code string) (LoginResponse, string, int64, error)
}
