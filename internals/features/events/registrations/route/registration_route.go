package route

import (
	"vagsociety_backend/internals/features/events/registrations/controller"

	"github.com/gofiber/fiber/v2"
)

// Publik: form registrasi event (rate-limit dipasang di router induk).
func RegistrationPublicRoutes(public fiber.Router, ctrl *controller.RegistrationController, guards ...fiber.Handler) {
	g := public.Group("/events/registrations")
	handlers := append(append([]fiber.Handler{}, guards...), ctrl.Create)
	g.Post("/", handlers...)
}

// Admin: review & moderasi (router sudah dilindungi AuthAdmin).
func RegistrationAdminRoutes(admin fiber.Router, ctrl *controller.RegistrationController) {
	g := admin.Group("/registrations")
	g.Get("/", ctrl.List)                // tab PENDING/APPROVED/DECLINED
	g.Get("/:id", ctrl.Get)              // detail + foto
	g.Post("/:id/approve", ctrl.Approve) // PENDING → APPROVED
	g.Post("/:id/decline", ctrl.Decline) // PENDING → DECLINED
}
