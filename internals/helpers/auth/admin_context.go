package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key c.Locals yang diisi middleware AuthAdmin.
const (
	LocAdminID    = "admin_id"    // string uuid
	LocAdminEmail = "admin_email" // string
)

func SetAdminLocals(c *fiber.Ctx, id uuid.UUID, email string) {
	c.Locals(LocAdminID, id.String())
	c.Locals(LocAdminEmail, email)
}

// GetAdminIDFromToken ambil admin id dari Locals; 401 kalau tidak ada / rusak.
func GetAdminIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocAdminID).(string)
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "admin_id tidak valid")
	}
	return id, nil
}

func GetAdminEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocAdminEmail).(string)
	return s
}

// ExtractBearerToken: Authorization: Bearer xxx, atau cookie kalau cookieName diisi.
func ExtractBearerToken(c *fiber.Ctx, cookieName string) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); authz != "" {
		fields := strings.Fields(authz)
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			return strings.Trim(fields[1], "\"'")
		}
		return ""
	}
	if cookieName != "" {
		return strings.TrimSpace(c.Cookies(cookieName))
	}
	return ""
}
