package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:        42,
		FirstName: "Ana",
		LastName:  "Rojas",
		Email:     "ana@example.com",
		Role:      domain.RoleTechnician,
	}
}

func TestNewTokenManager(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		require.ErrorIs(t, err, ErrEmptySecret)
	})

	t.Run("defaults ttl", func(t *testing.T) {
		tm, err := NewTokenManager(testSecret, 0)
		require.NoError(t, err)
		require.Equal(t, time.Hour, tm.TTL())
	})
}

func TestIssueAndVerify(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	user := testUser()
	token, exp, err := tm.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.FirstName, claims.FirstName)
	require.Equal(t, user.LastName, claims.LastName)
	require.Equal(t, user.Role, claims.Role)

	identity := claims.Identity()
	require.Equal(t, user.ID, identity.UserID)
	require.Equal(t, user.Role, identity.Role)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	claims := &Claims{
		UserID: 7,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsTampered(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	// Corrupt one character of the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	user := testUser()
	user.Role = domain.Role("superuser")
	token, _, err := tm.Issue(user)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongMethod(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	// alg=none tokens must never verify.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
}
