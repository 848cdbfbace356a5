package seeds

import (
	"context"
	"log"

	"vagsociety_backend/internals/configs"
	admins "vagsociety_backend/internals/seeds/admins"
	products "vagsociety_backend/internals/seeds/products"

	"gorm.io/gorm"
)

// RunAllSeeds dipanggil lewat `go run . seed`.
func RunAllSeeds(db *gorm.DB) {
	ctx := context.Background()

	//* Admin
	if err := admins.SeedAdminFromEnv(ctx, db); err != nil {
		log.Printf("[WARN] seed admin dilewati: %v", err)
	}

	//* Produk
	path := configs.GetEnv("PRODUCT_SEED_FILE", "internals/seeds/products/data_products.json")
	if _, err := products.SeedProductsFromJSON(ctx, db, path); err != nil {
		log.Printf("[WARN] seed produk gagal: %v", err)
	}
}
