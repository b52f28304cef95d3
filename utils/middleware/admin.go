package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studybridge/consultancy-api/utils/response"
)

// AccessGuard gates mutating and administrative routes behind a single
// shared-secret bearer token. There is no per-user identity: the secret is
// configured once at startup and injected here, never read ad hoc.
type AccessGuard struct {
	secret string
}

// NewAccessGuard creates a guard for the given secret.
func NewAccessGuard(secret string) *AccessGuard {
	return &AccessGuard{secret: secret}
}

// Authenticate reports whether the request carries the configured admin
// token. A missing header, wrong scheme, or mismatched token all yield
// false; the guard never errors on malformed input.
func (g *AccessGuard) Authenticate(authHeader string) bool {
	if g.secret == "" {
		return false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(parts[1]), []byte(g.secret)) == 1
}

// Required is middleware enforcing the guard. The 401 response does not
// distinguish a missing token from a wrong one. Admin responses are never
// cacheable.
func (g *AccessGuard) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		response.NoStore(c)
		if !g.Authenticate(c.Get(fiber.HeaderAuthorization)) {
			return response.Unauthorized(c, "Invalid or missing admin token")
		}
		return c.Next()
	}
}
