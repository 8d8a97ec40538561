package middleware

import (
	"log"

	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the cookie the identity token travels in.
const TokenCookie = "token"

// identityKey is the Locals key the verified identity is stored under.
const identityKey = "identity"

// AuthRequired is a Fiber middleware that resolves the token cookie to
// a verified identity or rejects the request. It never falls back to an
// anonymous identity, and it never trusts a user id from the request
// body.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(TokenCookie)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		identity, err := authService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AdminRequired allows only admin identities through. Must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if !identity.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the verified identity stored by AuthRequired,
// or nil when the request was not authenticated.
func IdentityFromCtx(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
