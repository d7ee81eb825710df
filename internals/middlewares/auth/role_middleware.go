// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"mahallku_backend/internals/constants"
)

// OnlyRoles menolak request yang role-nya di luar daftar.
// Dipakai di level group: /api/a untuk staff, /api/s untuk super.
func OnlyRoles(message string, allowed ...constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals("role").(string)
		role, ok := constants.ParseRole(raw)
		if !ok || !constants.RoleIn(role, allowed) {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}
