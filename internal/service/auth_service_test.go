package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/domain"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, role *domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if role == nil || user.Role == *role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *auth.MemoryRegistry) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	repo := newFakeUserRepo()
	registry := auth.NewMemoryRegistry()
	return NewAuthService(repo, tm, registry, bcrypt.MinCost), repo, registry
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName: "Ana",
		LastName:  "Rojas",
		Email:     email,
		Role:      domain.RoleTechnician,
	}
	require.NoError(t, svc.Register(context.Background(), user, "s3cret"))
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc, repo, _ := newTestAuthService(t)
		user := registerTestUser(t, svc, "ana@example.com")

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotEqual(t, "s3cret", stored.PasswordHash)
		require.NoError(t, auth.ComparePassword(stored.PasswordHash, "s3cret"))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		registerTestUser(t, svc, "ana@example.com")

		err := svc.Register(ctx, &domain.User{
			FirstName: "Other",
			LastName:  "Person",
			Email:     "ana@example.com",
			Role:      domain.RoleAdmin,
		}, "whatever")
		require.Error(t, err)
		require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		err := svc.Register(ctx, &domain.User{
			Email: "x@example.com",
			Role:  domain.Role("superuser"),
		}, "whatever")
		require.Error(t, err)
		require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a verifiable token", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		registered := registerTestUser(t, svc, "ana@example.com")

		user, token, exp, err := svc.Login(ctx, "ana@example.com", "s3cret")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
		require.True(t, exp.After(time.Now()))

		claims, err := svc.TokenManager().Verify(token)
		require.NoError(t, err)
		require.Equal(t, registered.ID, claims.UserID)
		require.Equal(t, domain.RoleTechnician, claims.Role)
	})

	t.Run("wrong password and unknown email look alike", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		registerTestUser(t, svc, "ana@example.com")

		_, _, _, errWrongPass := svc.Login(ctx, "ana@example.com", "nope")
		_, _, _, errNoUser := svc.Login(ctx, "ghost@example.com", "nope")

		require.Error(t, errWrongPass)
		require.Error(t, errNoUser)
		require.Equal(t,
			apperrors.ToDomainError(errWrongPass).Message,
			apperrors.ToDomainError(errNoUser).Message,
		)
		require.True(t, apperrors.IsAuthRejection(errWrongPass))
		require.True(t, apperrors.IsAuthRejection(errNoUser))
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, registry := newTestAuthService(t)
	registerTestUser(t, svc, "ana@example.com")

	_, token, _, err := svc.Login(ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	revoked, err := registry.Contains(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)

	// Logging out twice, or with a token that never verified, still
	// succeeds.
	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, "not-even-a-jwt"))
}
