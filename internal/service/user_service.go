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

// UserUpdate carries the optional fields of a user update. Nil fields
// are left untouched.
type UserUpdate struct {
	FirstName         *string
	LastName          *string
	Email             *string
	Role              *domain.Role
	Password          *string
	RUT               *string
	PhoneNumber       *string
	ProfilePictureURL *string
}

// UserService handles account administration and self-service profile
// updates.
type UserService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, tokenMgr *auth.TokenManager, bcryptCost int) *UserService {
	return &UserService{users: users, tokenMgr: tokenMgr, bcryptCost: bcryptCost}
}

// List returns accounts, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	if role != nil && !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role filter", nil)
	}
	return s.users.List(ctx, role)
}

// Get fetches a single account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// Create adds an account on behalf of an administrator.
func (s *UserService) Create(ctx context.Context, user *domain.User, password string) error {
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

// Update applies an administrative update to any account.
func (s *UserService) Update(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(user, update); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSelf applies a profile update for the calling user. The role
// field is ignored: accounts cannot escalate themselves. A fresh token
// is issued so the credential snapshot reflects the new identity.
func (s *UserService) UpdateSelf(ctx context.Context, id int64, update UserUpdate) (*domain.User, string, time.Time, error) {
	update.Role = nil

	user, err := s.Update(ctx, id, update)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

func (s *UserService) apply(user *domain.User, update UserUpdate) error {
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return apperrors.NewValidationError("role must be admin or technician", nil)
		}
		user.Role = *update.Role
	}
	if update.RUT != nil {
		user.RUT = update.RUT
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.ProfilePictureURL != nil {
		user.ProfilePictureURL = update.ProfilePictureURL
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	return nil
}
