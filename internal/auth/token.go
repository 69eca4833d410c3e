package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// ErrEmptySecret is returned when a TokenManager is constructed
// without a signing secret. Callers must treat this as fatal.
var ErrEmptySecret = errors.New("auth: signing secret is empty")

// TokenManager issues and verifies signed access tokens. The claims
// are a snapshot of the user at issuance time; the guard never goes
// back to the database, so role or name changes only take effect once
// a fresh token is issued.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager. The secret is mandatory.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured credential lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the JWT payload.
type Claims struct {
	UserID            int64       `json:"uid"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Role              domain.Role `json:"role"`
	ProfilePictureURL *string     `json:"profile_picture_url,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the request-scoped identity.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{
		UserID:            c.UserID,
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		Role:              c.Role,
		ProfilePictureURL: c.ProfilePictureURL,
	}
}

// Issue builds and signs a token for the given user.
func (tm *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:            user.ID,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              user.Role,
		ProfilePictureURL: user.ProfilePictureURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and returns the decoded claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, errors.New("unknown role in token")
	}
	return claims, nil
}
