package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/careerlaunchpad/api/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the decoded caller attached to the request context. It is
// trusted from the token payload; handlers that need fresh role or profile
// data must fetch the record explicitly.
type Identity struct {
	ID    string
	Email string
}

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	tokens *TokenService
}

// NewMiddleware constructs the request guard.
func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Expired and malformed
// tokens produce distinguishable 401 messages so the client can decide
// whether to attempt a refresh.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.VerifyAccessToken(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("token expired")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(identityKey, &Identity{ID: claims.Subject, Email: claims.Email})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
