// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"vagsociety_backend/internals/configs"
	adminController "vagsociety_backend/internals/features/admins/auth/controller"
	adminRoute "vagsociety_backend/internals/features/admins/auth/route"
	adminService "vagsociety_backend/internals/features/admins/auth/service"
	registrationController "vagsociety_backend/internals/features/events/registrations/controller"
	registrationRoute "vagsociety_backend/internals/features/events/registrations/route"
	registrationService "vagsociety_backend/internals/features/events/registrations/service"
	orderController "vagsociety_backend/internals/features/shop/orders/controller"
	orderRoute "vagsociety_backend/internals/features/shop/orders/route"
	orderService "vagsociety_backend/internals/features/shop/orders/service"
	productController "vagsociety_backend/internals/features/shop/products/controller"
	productRoute "vagsociety_backend/internals/features/shop/products/route"
	productService "vagsociety_backend/internals/features/shop/products/service"
	"vagsociety_backend/internals/helpers/storage"
	"vagsociety_backend/internals/mailer"
	middlewares "vagsociety_backend/internals/middlewares"
	authMiddleware "vagsociety_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

// Deps dependensi yang dirakit di main (atau test).
type Deps struct {
	Config *configs.Config
	DB     *gorm.DB
	Blob   storage.BlobService
	Mail   mailer.Sender
	Auth   *adminService.Service

	// nil = pakai limiter default; test bisa isi handler no-op
	LoginGuard        fiber.Handler
	RegistrationGuard fiber.Handler
	CheckoutGuard     fiber.Handler
}

func guardOr(h fiber.Handler, def func() fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}
	return def()
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	cfg := d.Config

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DB, cfg, d.Blob)

	// ===================== AUTH ADMIN =====================
	log.Println("[INFO] Setting up AdminAuthRoutes...")
	authCtrl := adminController.NewAuthController(d.Auth, cfg.CookieSecure)
	adminRoute.AdminAuthRoutes(app, authCtrl, guardOr(d.LoginGuard, middlewares.LoginRateLimiter))

	// ===================== GROUPS =====================
	public := app.Group("/api/public")
	admin := app.Group("/api/a", authMiddleware.AuthAdmin(authMiddleware.AuthAdminOpts{
		Svc:                 d.Auth,
		AllowCookieFallback: true,
	}))
	adminRoute.AdminMeRoutes(admin, authCtrl)

	// ===================== EVENTS =====================
	log.Println("[INFO] Setting up RegistrationRoutes...")
	regSvc := registrationService.New(d.DB, d.Blob, d.Mail, registrationService.Options{
		Folder:     cfg.StorageFolder,
		AdminEmail: cfg.AdminEmail,
		Compress:   cfg.ImageCompress,
	})
	policy := registrationService.DefaultUploadPolicy()
	policy.MaxFileBytes = cfg.UploadMaxFileBytes
	policy.MaxTotalBytes = cfg.UploadMaxTotalBytes
	regCtrl := registrationController.NewRegistrationController(regSvc, policy)
	registrationRoute.RegistrationPublicRoutes(public, regCtrl, guardOr(d.RegistrationGuard, middlewares.RegistrationRateLimiter))
	registrationRoute.RegistrationAdminRoutes(admin, regCtrl)

	// ===================== SHOP =====================
	log.Println("[INFO] Setting up ShopRoutes...")
	prodCtrl := productController.NewProductController(productService.New(d.DB, d.Blob, "products"))
	productRoute.ProductPublicRoutes(public, prodCtrl)
	productRoute.ProductAdminRoutes(admin, prodCtrl)

	ordCtrl := orderController.NewOrderController(orderService.New(d.DB, d.Mail, orderService.Options{AdminEmail: cfg.AdminEmail}))
	orderRoute.OrderPublicRoutes(public, ordCtrl, guardOr(d.CheckoutGuard, middlewares.CheckoutRateLimiter))
	orderRoute.OrderAdminRoutes(admin, ordCtrl)

	log.Println("[INFO] Routes siap.")
}
