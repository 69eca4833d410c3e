package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// IdentityKey is the fiber locals key under which the guard stores the
// verified identity for downstream handlers.
const IdentityKey = "auth_identity"

// ErrNoBearerToken is returned when the authorization header is
// missing or does not match the "Bearer <token>" shape.
var ErrNoBearerToken = errors.New("auth: no bearer token")

// Guard validates bearer tokens on protected routes. It checks the
// revocation registry before the signature so a revoked token is
// rejected even while still validly signed, and it never touches the
// database: the signed claims snapshot is trusted as-is.
type Guard struct {
	tokens   *TokenManager
	registry RevocationRegistry
}

// NewGuard constructs the access guard middleware.
func NewGuard(tokens *TokenManager, registry RevocationRegistry) *Guard {
	return &Guard{tokens: tokens, registry: registry}
}

// BearerToken extracts the credential from the request's authorization
// header. The logout flow reuses this so revocation and verification
// agree on what "the current token" is.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoBearerToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoBearerToken
	}
	return parts[1], nil
}

// Handle enforces authentication for protected routes.
func (g *Guard) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return apperrors.NewUnauthenticated("missing or malformed authorization header")
	}

	revoked, err := g.registry.Contains(c.UserContext(), token)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if revoked {
		return apperrors.NewTokenRevoked()
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return apperrors.NewTokenInvalid(err)
	}

	c.Locals(IdentityKey, claims.Identity())
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(IdentityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
