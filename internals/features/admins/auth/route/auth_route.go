package route

import (
	"vagsociety_backend/internals/features/admins/auth/controller"

	"github.com/gofiber/fiber/v2"
)

// Base: /api/auth/admin. loginGuard biasanya LoginRateLimiter.
func AdminAuthRoutes(app fiber.Router, ctrl *controller.AuthController, loginGuard ...fiber.Handler) {
	g := app.Group("/api/auth/admin")
	g.Post("/login", append(append([]fiber.Handler{}, loginGuard...), ctrl.Login)...)
	g.Post("/logout", ctrl.Logout)
}

// Di bawah group /api/a (sudah AuthAdmin).
func AdminMeRoutes(admin fiber.Router, ctrl *controller.AuthController) {
	admin.Get("/me", ctrl.Me)
}
