package routes

import (
	"time"

	"vagsociety_backend/internals/configs"
	"vagsociety_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func BaseRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, blob storage.BlobService) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("VagSocietySerbia API 🚗")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.Environment,
			"storage":        cfg.StorageDriver,
			"mail":           cfg.MailDriver,
		})
	})

	// foto registrasi & gambar produk untuk STORAGE_DRIVER=local
	if cfg.StorageDriver == "local" && cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir, fiber.Static{
			ByteRange: true,
			MaxAge:    86400,
		})
	}

	// STORAGE_DRIVER=memory: object dilayani langsung dari map
	if mem, ok := blob.(*storage.MemoryService); ok {
		app.Get("/blob/*", func(c *fiber.Ctx) error {
			obj, data, found := mem.Get(c.Params("*"))
			if !found {
				return fiber.ErrNotFound
			}
			c.Set(fiber.HeaderContentType, obj.ContentType)
			return c.Send(data)
		})
	}
}
