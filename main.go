package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"vagsociety_backend/internals/configs"
	database "vagsociety_backend/internals/databases"
	adminService "vagsociety_backend/internals/features/admins/auth/service"
	scheduler "vagsociety_backend/internals/features/admins/auth/scheduler"
	helper "vagsociety_backend/internals/helpers"
	"vagsociety_backend/internals/helpers/storage"
	"vagsociety_backend/internals/mailer"
	middlewares "vagsociety_backend/internals/middlewares"
	routes "vagsociety_backend/internals/route"
	"vagsociety_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	// `go run . seed` → admin + katalog awal, lalu keluar
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		db := configs.InitSeederDB()
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("[ERROR] AutoMigrate gagal: %v", err)
		}
		seeds.RunAllSeeds(db)
		return
	}

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[ERROR] konfigurasi tidak valid: %v", err)
	}

	app := newApp(cfg)

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB(cfg)
	database.TunePool()
	database.WarmUpQueries()

	blob, err := storage.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("[ERROR] storage: %v", err)
	}
	mail, err := mailer.NewSender(cfg)
	if err != nil {
		log.Fatalf("[ERROR] mailer: %v", err)
	}
	auth := adminService.New(database.DB, cfg.JWTSecret, cfg.AdminSessionTTL)

	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()

	// ⏱ scheduler setelah DB siap
	scheduler.StartBlacklistCleanupScheduler(bgCtx, database.DB, 24*time.Hour)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Config: cfg,
		DB:     database.DB,
		Blob:   blob,
		Mail:   mail,
		Auth:   auth,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 60 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s (env=%s, storage=%s, mail=%s)", cfg.Port, cfg.Environment, blob.Driver(), cfg.MailDriver)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopBg()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("[INFO] server berhenti")
}

// newApp: X-Forwarded-For hanya dipercaya dari TRUSTED_PROXIES, supaya
// rate limiter (key = c.IP()) tidak bisa diakali dengan header palsu.
func newApp(cfg *configs.Config) *fiber.App {
	fc := fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		// 5 foto x batas per file + field form
		BodyLimit:    int(cfg.UploadMaxTotalBytes) + (2 << 20),
		ErrorHandler: helper.FromFiberError,
	}
	if len(cfg.TrustedProxies) > 0 {
		fc.ProxyHeader = fiber.HeaderXForwardedFor
		fc.EnableTrustedProxyCheck = true
		fc.TrustedProxies = cfg.TrustedProxies
	}
	return fiber.New(fc)
}
