package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/identity"
	"github.com/dovoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer mints access tokens for authenticated users
type TokenIssuer interface {
	Generate(user *identity.User) (string, time.Time, error)
}

// AuthService implements back-office authentication
type AuthService struct {
	users    identity.Repository
	tokens   TokenIssuer
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.Repository, tokens TokenIssuer, recorder audit.Recorder, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}
}

// Login verifies credentials and issues an access token. Unknown
// usernames and wrong passwords produce the same Unauthorized answer
// so the login form cannot be used to probe for accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Info("failed login attempt", zap.String("username", req.Username))
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionLogin, user.Username,
		fmt.Sprintf("User %s logged in", user.Username))

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
