package route

import (
	"vagsociety_backend/internals/features/shop/orders/controller"

	"github.com/gofiber/fiber/v2"
)

// Publik: checkout keranjang & order satu produk (rate-limit dari router induk).
func OrderPublicRoutes(public fiber.Router, ctrl *controller.OrderController, guards ...fiber.Handler) {
	g := public.Group("/orders")
	g.Post("/checkout", append(append([]fiber.Handler{}, guards...), ctrl.Checkout)...)
	g.Post("/", append(append([]fiber.Handler{}, guards...), ctrl.PlaceSingle)...)
}

// Admin: daftar order & ubah status.
func OrderAdminRoutes(admin fiber.Router, ctrl *controller.OrderController) {
	g := admin.Group("/orders")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id/status", ctrl.UpdateStatus) // PENDING | DECLINED | SHIPPED
}
