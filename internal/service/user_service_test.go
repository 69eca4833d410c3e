package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/domain"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	repo := newFakeUserRepo()
	return NewUserService(repo, tm, bcrypt.MinCost), repo, tm
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName: "Ana",
		LastName:  "Rojas",
		Email:     email,
		Role:      role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only set fields", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t)
		seeded := seedUser(t, repo, "ana@example.com", domain.RoleTechnician)

		updated, err := svc.Update(ctx, seeded.ID, UserUpdate{
			FirstName:   strPtr("Anita"),
			PhoneNumber: strPtr("+56 9 1234 5678"),
		})
		require.NoError(t, err)
		require.Equal(t, "Anita", updated.FirstName)
		require.Equal(t, "Rojas", updated.LastName)
		require.NotNil(t, updated.PhoneNumber)
		require.Equal(t, domain.RoleTechnician, updated.Role)
	})

	t.Run("admin can change role", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t)
		seeded := seedUser(t, repo, "ana@example.com", domain.RoleTechnician)

		role := domain.RoleAdmin
		updated, err := svc.Update(ctx, seeded.ID, UserUpdate{Role: &role})
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, repo, _ := newTestUserService(t)
		seeded := seedUser(t, repo, "ana@example.com", domain.RoleTechnician)

		role := domain.Role("superuser")
		_, err := svc.Update(ctx, seeded.ID, UserUpdate{Role: &role})
		require.Error(t, err)
		require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		svc, _, _ := newTestUserService(t)
		_, err := svc.Update(ctx, 999, UserUpdate{FirstName: strPtr("X")})
		require.Error(t, err)
		require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	})
}

func TestUserServiceUpdateSelf(t *testing.T) {
	ctx := context.Background()
	svc, repo, tm := newTestUserService(t)
	seeded := seedUser(t, repo, "ana@example.com", domain.RoleTechnician)

	role := domain.RoleAdmin
	user, token, exp, err := svc.UpdateSelf(ctx, seeded.ID, UserUpdate{
		FirstName:         strPtr("Anita"),
		Role:              &role,
		ProfilePictureURL: strPtr("https://cdn.example.com/avatar.jpg"),
	})
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	// Self-service updates never escalate the role.
	require.Equal(t, domain.RoleTechnician, user.Role)

	// The re-issued credential carries the new profile snapshot,
	// picture included.
	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "Anita", claims.FirstName)
	require.Equal(t, domain.RoleTechnician, claims.Role)
	require.NotNil(t, claims.ProfilePictureURL)
	require.Equal(t, "https://cdn.example.com/avatar.jpg", *claims.ProfilePictureURL)
}

func TestUserServiceListFilter(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestUserService(t)
	seedUser(t, repo, "admin@example.com", domain.RoleAdmin)
	seedUser(t, repo, "tech1@example.com", domain.RoleTechnician)
	seedUser(t, repo, "tech2@example.com", domain.RoleTechnician)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	role := domain.RoleTechnician
	technicians, err := svc.List(ctx, &role)
	require.NoError(t, err)
	require.Len(t, technicians, 2)

	bad := domain.Role("superuser")
	_, err = svc.List(ctx, &bad)
	require.Error(t, err)
}
