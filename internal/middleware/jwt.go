package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/utils"
)

const identityLocal = "identity"

// JWTProtected validates the bearer token and resolves the caller against
// the current user record. Role flags come from the database, not the token,
// so a role change takes effect on the next request rather than at token
// expiry. A token whose subject no longer exists is rejected.
func JWTProtected(secret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID := extractUserIDFromClaims(claims)
		if userID == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		user, err := users.GetByID(c.UserContext(), *userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve user")
		}

		c.Locals(identityLocal, guard.Identity{
			UserID:      user.ID,
			Email:       user.Email,
			IsProfessor: user.IsProfessor,
			IsAdmin:     user.IsAdmin,
		})
		c.Locals("user_id", user.ID)

		return c.Next()
	}
}

// IdentityFromContext returns the resolved caller identity, or the zero
// Identity when the request was not authenticated.
func IdentityFromContext(c *fiber.Ctx) guard.Identity {
	if value := c.Locals(identityLocal); value != nil {
		if identity, ok := value.(guard.Identity); ok {
			return identity
		}
	}
	return guard.Identity{}
}

func extractUserIDFromClaims(claims jwt.MapClaims) *uint {
	keys := []string{"sub", "user_id", "id"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if normalized, err := normalizeUserID(value); err == nil {
				return &normalized
			}
		}
	}

	return nil
}

func normalizeUserID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}
