package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	registry   auth.RevocationRegistry
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokenMgr *auth.TokenManager, registry auth.RevocationRegistry, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   tokenMgr,
		registry:   registry,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, user *domain.User, password string) error {
	if !user.Role.Valid() {
		return apperrors.NewValidationError("role must be admin or technician", nil)
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Create(ctx, user)
}

// Login authenticates by email and password and issues a credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout revokes the presented credential. Revoking an already revoked
// or expired token is a no-op success; the token does not need to
// still verify for the logout to be honored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.registry.Revoke(ctx, token)
}

// TokenManager exposes the underlying token manager for middleware
// wiring and token re-issuance on profile updates.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
