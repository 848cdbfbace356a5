// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	adminService "vagsociety_backend/internals/features/admins/auth/service"
	helperAuth "vagsociety_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthAdminOpts struct {
	Svc                 *adminService.Service
	AllowCookieFallback bool // pakai cookie admin_token jika tidak ada Bearer
}

// AuthAdmin verifikasi JWT admin (signature, exp, blacklist) lalu isi Locals admin_id/admin_email.
func AuthAdmin(o AuthAdminOpts) fiber.Handler {
	if o.Svc == nil {
		panic("AuthAdmin: Svc wajib diisi")
	}
	cookie := ""
	if o.AllowCookieFallback {
		cookie = adminService.CookieName
	}

	return func(c *fiber.Ctx) error {
		raw := helperAuth.ExtractBearerToken(c, cookie)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, err := o.Svc.Verify(c.UserContext(), raw)
		switch {
		case err == nil:
		case errors.Is(err, adminService.ErrTokenRevoked):
			return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
		case errors.Is(err, adminService.ErrInvalidToken):
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		default:
			log.Printf("[ERROR] AuthAdmin: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		helperAuth.SetAdminLocals(c, claims.AdminID, claims.Email)
		return c.Next()
	}
}
