package helper

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mahallku_backend/internals/constants"
)

// Ambil user_id yang disimpan auth middleware di Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user_id tidak valid: %w", err)
	}
	return id, nil
}

// Ambil role user dari Locals; role tak dikenal dianggap tidak ada.
func GetRoleFromToken(c *fiber.Ctx) (constants.Role, error) {
	raw, ok := c.Locals("role").(string)
	if !ok || raw == "" {
		return "", fmt.Errorf("role tidak ditemukan di token")
	}
	role, ok := constants.ParseRole(raw)
	if !ok {
		return "", fmt.Errorf("role %q tidak dikenal", raw)
	}
	return role, nil
}

// Ambil tenant_id dari Locals, nil kalau user super (tanpa tenant).
func GetTenantIDFromToken(c *fiber.Ctx) (*uuid.UUID, error) {
	raw, ok := c.Locals("tenant_id").(string)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("tenant_id tidak valid: %w", err)
	}
	return &id, nil
}

func IsSuper(c *fiber.Ctx) bool {
	role, err := GetRoleFromToken(c)
	return err == nil && role == constants.RoleSuper
}

func IsAdmin(c *fiber.Ctx) bool {
	role, err := GetRoleFromToken(c)
	return err == nil && constants.RoleIn(role, constants.AdminAndAbove)
}
