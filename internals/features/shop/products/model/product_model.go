package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryApparel     ProductCategory = "APPAREL"
	CategoryAccessories ProductCategory = "ACCESSORIES"
	CategoryStickers    ProductCategory = "STICKERS"
)

var AllCategories = []ProductCategory{CategoryApparel, CategoryAccessories, CategoryStickers}

func ParseProductCategory(s string) (ProductCategory, error) {
	c := ProductCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("kategori tidak dikenal: %q", s)
	}
	return c, nil
}

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryApparel, CategoryAccessories, CategoryStickers:
		return true
	}
	return false
}

type ProductModel struct {
	ProductID          uuid.UUID       `gorm:"column:product_id;type:uuid;primaryKey" json:"product_id"`
	ProductName        string          `gorm:"column:product_name;type:varchar(160);not null" json:"product_name"`
	ProductDescription string          `gorm:"column:product_description;type:text;not null" json:"product_description"`
	ProductPriceCents  int64           `gorm:"column:product_price_cents;not null" json:"product_price_cents"`
	ProductImageURL    string          `gorm:"column:product_image_url;type:text;not null" json:"product_image_url"`
	ProductCategory    ProductCategory `gorm:"column:product_category;type:varchar(20);not null;index" json:"product_category"`
	ProductIsActive    bool            `gorm:"column:product_is_active;not null;index" json:"product_is_active"`
	ProductCreatedAt   time.Time       `gorm:"column:product_created_at;autoCreateTime" json:"product_created_at"`
	ProductUpdatedAt   time.Time       `gorm:"column:product_updated_at;autoUpdateTime" json:"product_updated_at"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProductID == uuid.Nil {
		m.ProductID = uuid.New()
	}
	return nil
}
