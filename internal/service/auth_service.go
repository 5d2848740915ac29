package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/metrics"
	"github.com/mmynk/rentkeeper/internal/models"
)

// AuthService implements owner registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
		logger:        logger,
	}
}

// RegistrationOpen reports whether the owner account can still be created.
func (s *AuthService) RegistrationOpen(ctx context.Context) (bool, error) {
	return s.authenticator.RegistrationOpen(ctx)
}

// Register creates the owner account. It returns auth.ErrRegistrationClosed
// once an owner exists and auth.ErrMissingCredentials for empty input.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.Owner, error) {
	s.logger.Info("Register request", "email", auth.NormalizeEmail(email))

	owner, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		if errors.Is(err, auth.ErrRegistrationClosed) || errors.Is(err, auth.ErrMissingCredentials) {
			s.logger.Warn("Registration refused", "error", err)
		} else {
			s.logger.Error("Registration failed", "error", err)
		}
		return nil, err
	}
	s.metrics.RecordCreated("owner")

	s.logger.Info("Owner registered successfully", "owner_id", owner.ID, "email", owner.Email)
	return owner, nil
}

// Login authenticates the owner and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Owner, string, error) {
	s.logger.Info("Login request", "email", auth.NormalizeEmail(email))

	if email == "" || password == "" {
		s.metrics.LoginAttempt(false)
		return nil, "", auth.ErrInvalidCredentials
	}

	owner, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.LoginAttempt(false)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "email", auth.NormalizeEmail(email))
		} else {
			s.logger.Error("Login failed", "error", err)
		}
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(owner)
	if err != nil {
		s.logger.Error("Failed to generate token", "owner_id", owner.ID, "error", err)
		return nil, "", err
	}
	s.metrics.LoginAttempt(true)

	s.logger.Info("Owner logged in successfully", "owner_id", owner.ID)
	return owner, token, nil
}

// SessionDuration is how long a login stays valid.
func (s *AuthService) SessionDuration() time.Duration {
	return s.jwtManager.Duration()
}
