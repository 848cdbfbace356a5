package route

import (
	"vagsociety_backend/internals/features/shop/products/controller"

	"github.com/gofiber/fiber/v2"
)

// Publik: katalog produk aktif.
func ProductPublicRoutes(public fiber.Router, ctrl *controller.ProductController) {
	public.Get("/products", ctrl.ListPublic) // ?category=APPAREL
}

// Admin: CRUD produk.
func ProductAdminRoutes(admin fiber.Router, ctrl *controller.ProductController) {
	g := admin.Group("/products")
	g.Get("/", ctrl.ListAdmin)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
