package usecase

import (
	"context"
	"fmt"
	"time"

	"book-catalog/internal/data/repository"
	"book-catalog/internal/dto/request"
	"book-catalog/internal/dto/response"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	VerifyCredentials(ctx context.Context, username, password string) bool
	Issue(username string) (string, time.Time, error)
	// Authenticate returns the username a valid token was issued for.
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	credentials repository.CredentialRepository
	config      utils.JWTConfig
	log         *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	credentials repository.CredentialRepository,
	config utils.JWTConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		credentials: credentials,
		config:      config,
		log:         log.With(zap.String("service", "auth")),
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if !s.VerifyCredentials(ctx, req.Username, req.Password) {
		s.log.Warn("Login rejected", zap.String("username", req.Username))
		return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	token, expiresAt, err := s.Issue(req.Username)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("username", req.Username),
		zap.Time("expires_at", expiresAt))

	return &response.TokenResponse{
		AccessToken: token,
		TokenType:   response.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) VerifyCredentials(ctx context.Context, username, password string) bool {
	return s.credentials.Verify(ctx, username, password)
}

func (s *authService) Issue(username string) (string, time.Time, error) {
	return utils.GenerateToken(s.config, username, s.now())
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseToken(s.config, token, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	// tokens outlive configuration changes; a removed user must not keep access
	if !s.credentials.Exists(ctx, claims.Subject) {
		return "", fmt.Errorf("%w: unknown subject %q", ErrUnauthorized, claims.Subject)
	}

	return claims.Subject, nil
}
