package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/collegecoursera/api/internal/utils"
)

// RequireAdmin rejects requests whose resolved identity lacks the admin flag.
// It must run after JWTProtected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromContext(c)
		if !identity.IsAuthenticated() {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !identity.IsAdmin {
			return utils.SendError(c, fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// RequireProfessorOrAdmin rejects requests from callers with no elevated role.
// It must run after JWTProtected.
func RequireProfessorOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromContext(c)
		if !identity.IsAuthenticated() {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !identity.IsProfessor && !identity.IsAdmin {
			return utils.SendError(c, fiber.StatusForbidden, "professor or admin access required")
		}
		return c.Next()
	}
}
