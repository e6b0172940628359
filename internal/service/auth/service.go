package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leavehq/leave-backend-go/internal/config"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/email"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehq/leave-backend-go/internal/pkg/oauth"
)

const resetTokenTTL = 15 * time.Minute

type resetToken struct {
	userID    string
	expiresAt time.Time
}

type authServiceImpl struct {
	cfg *config.Config

	userRepo  user.UserRepository
	jwtSvc    jwt.Service
	googleSvc oauth.GoogleService
	emailSvc  email.EmailService

	mu          sync.Mutex
	resetTokens map[string]resetToken
}

func NewAuthService(
	cfg *config.Config,
	userRepo user.UserRepository,
	jwtSvc jwt.Service,
	googleSvc oauth.GoogleService,
	emailSvc email.EmailService,
) auth.AuthService {
	return &authServiceImpl{
		cfg:         cfg,
		userRepo:    userRepo,
		jwtSvc:      jwtSvc,
		googleSvc:   googleSvc,
		emailSvc:    emailSvc,
		resetTokens: make(map[string]resetToken),
	}
}

// Login implements auth.AuthService.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *authServiceImpl) issueTokens(u user.User) (auth.LoginResponse, string, int64, error) {
	accessToken, accessExpiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.ClientID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	resp := auth.LoginResponse{
		TokenResponse: auth.TokenResponse{
			AccessToken: accessToken,
			ExpiresAt:   accessExpiresAt,
			TokenType:   "Bearer",
		},
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		ClientID:   u.ClientID,
		Role:       string(u.Role),
	}
	return resp, refreshToken, refreshExpiresAt, nil
}

// Refresh implements auth.AuthService. The presented refresh token is
// revoked and replaced, so each token works exactly once.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, string, int64, error) {
	if s.jwtSvc.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, "", 0, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtSvc.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get user: %w", err)
	}

	s.jwtSvc.RevokeToken(refreshToken)
	return s.issueTokens(u)
}

// Logout implements auth.AuthService.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := s.jwtSvc.DecodeRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	s.jwtSvc.RevokeToken(refreshToken)
	return nil
}

// ForgotPassword implements auth.AuthService.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(resetTokenTTL)

	s.mu.Lock()
	s.resetTokens[token] = resetToken{userID: u.ID, expiresAt: expiresAt}
	s.mu.Unlock()

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.App.FrontendURL, token)
	go func() {
		if err := s.emailSvc.SendPasswordReset(u.Email, link, expiresAt.Format("2006-01-02 15:04 MST")); err != nil {
			slog.Error("Failed to send password reset email", "error", err)
		}
	}()
	return nil
}

// ResetPassword implements auth.AuthService.
func (s *authServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	entry, ok := s.resetTokens[req.Token]
	if ok {
		delete(s.resetTokens, req.Token)
	}
	s.mu.Unlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return auth.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, entry.userID, string(hash))
}

// GoogleRedirectURL implements auth.AuthService.
func (s *authServiceImpl) GoogleRedirectURL(userAgent string) string {
	return s.googleSvc.RedirectURL(s.googleSvc.GenerateState(userAgent))
}

// GoogleCallback implements auth.AuthService. Google login only works for
// accounts that already exist; sign-up stays invitation-driven.
func (s *authServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.LoginResponse, string, int64, error) {
	profile, err := s.googleSvc.Exchange(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to exchange google code: %w", err)
	}
	if !profile.VerifiedEmail {
		return auth.LoginResponse{}, "", 0, auth.ErrGoogleAccountUnknown
	}

	u, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrGoogleAccountUnknown
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get user by email: %w", err)
	}

	return s.issueTokens(u)
}
