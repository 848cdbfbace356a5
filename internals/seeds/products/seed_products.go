package products

import (
	"context"
	"fmt"
	"log"
	"os"

	"vagsociety_backend/internals/features/shop/products/dto"
	"vagsociety_backend/internals/features/shop/products/model"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

// ProductSeed format file JSON; price memakai format yang sama dengan form admin ("24,90").
type ProductSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"isActive"`
}

// SeedProductsFromJSON insert produk yang namanya belum ada. Return jumlah yang dibuat.
func SeedProductsFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log.Println("[INFO] Membaca file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca file seed: %w", err)
	}
	var rows []ProductSeed
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("decode JSON: %w", err)
	}

	created := 0
	for _, r := range rows {
		req := dto.ProductRequest{
			Name:        r.Name,
			Description: r.Description,
			Price:       dto.FlexString(r.Price),
			ImageURL:    r.ImageURL,
			Category:    r.Category,
		}
		if r.IsActive != nil {
			v := dto.FlexBool(*r.IsActive)
			req.IsActive = &v
		}
		in, verrs := req.Validate()
		if verrs != nil {
			log.Printf("[WARN] produk %q tidak valid, lewati: %s", r.Name, verrs.Error())
			continue
		}

		var n int64
		if err := db.WithContext(ctx).Model(&model.ProductModel{}).
			Where("product_name = ?", in.Name).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("[INFO] produk %q sudah ada, lewati", in.Name)
			continue
		}

		p := model.ProductModel{
			ProductName:        in.Name,
			ProductDescription: in.Description,
			ProductPriceCents:  in.PriceCents,
			ProductImageURL:    in.ImageURL,
			ProductCategory:    in.Category,
			ProductIsActive:    in.IsActive,
		}
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return created, err
		}
		created++
	}
	log.Printf("[INFO] seed produk selesai: %d dibuat", created)
	return created, nil
}
