package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/constants"
)

// OnlyRoles: lanjut hanya kalau role di Locals termasuk roles.
func OnlyRoles(customForbiddenMessage string, roles ...string) fiber.Handler {
	if customForbiddenMessage == "" {
		customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if slices.Contains(roles, role) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, customForbiddenMessage)
	}
}

// IsAdmin: JWT valid + role admin. Dipasang di grup /api/a.
func IsAdmin(secret string, log *logrus.Logger) []fiber.Handler {
	return []fiber.Handler{
		AuthMiddleware(secret, log),
		OnlyRoles(constants.RoleErrorAdmin("admin"), constants.AdminOnly...),
	}
}
