package database

import (
	"log"
	"time"

	"vagsociety_backend/internals/configs"
	adminModel "vagsociety_backend/internals/features/admins/auth/model"
	registrationModel "vagsociety_backend/internals/features/events/registrations/model"
	orderModel "vagsociety_backend/internals/features/shop/orders/model"
	productModel "vagsociety_backend/internals/features/shop/products/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(cfg *configs.Config) {
	log.Println("[INFO] Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")

	if cfg.DBAutoMigrate {
		if err := AutoMigrate(DB); err != nil {
			log.Fatalf("[ERROR] AutoMigrate gagal: %v", err)
		}
		log.Println("[INFO] AutoMigrate selesai.")
	}
}

// AutoMigrate hanya untuk development dan test; produksi memakai migrasi eksternal.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&adminModel.AdminUserModel{},
		&adminModel.AdminTokenBlacklistModel{},
		&productModel.ProductModel{},
		&orderModel.OrderModel{},
		&registrationModel.RegistrationModel{},
		&registrationModel.RegistrationImageModel{},
	)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
