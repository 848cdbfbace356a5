package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	orderModel "vagsociety_backend/internals/features/shop/orders/model"
	"vagsociety_backend/internals/features/shop/products/dto"
	"vagsociety_backend/internals/features/shop/products/model"
	"vagsociety_backend/internals/helpers/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("produk tidak ditemukan")
	ErrImageUpload = errors.New("upload gambar produk gagal")
)

type Service struct {
	DB     *gorm.DB
	Blob   storage.BlobService
	Folder string // folder gambar produk di storage
}

func New(db *gorm.DB, blob storage.BlobService, folder string) *Service {
	if folder == "" {
		folder = "products"
	}
	return &Service{DB: db, Blob: blob, Folder: folder}
}

// ListActive katalog publik: hanya produk aktif, opsional per kategori.
func (s *Service) ListActive(ctx context.Context, category *model.ProductCategory) ([]model.ProductModel, error) {
	q := s.DB.WithContext(ctx).Where("product_is_active = ?", true)
	if category != nil {
		q = q.Where("product_category = ?", *category)
	}
	var rows []model.ProductModel
	if err := q.Order("product_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll untuk admin (aktif & non-aktif).
func (s *Service) ListAll(ctx context.Context, offset, limit int) ([]model.ProductModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.ProductModel{}).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ProductModel
	if err := q.Order("product_created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ProductModel, error) {
	var p model.ProductModel
	err := s.DB.WithContext(ctx).First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, in dto.ProductInput) (*model.ProductModel, error) {
	p := model.ProductModel{
		ProductName:        in.Name,
		ProductDescription: in.Description,
		ProductPriceCents:  in.PriceCents,
		ProductImageURL:    in.ImageURL,
		ProductCategory:    in.Category,
		ProductIsActive:    in.IsActive,
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("buat produk: %w", err)
	}
	log.Printf("[INFO] produk dibuat: %s (%s)", p.ProductID, p.ProductName)
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in dto.ProductInput) (*model.ProductModel, error) {
	var out model.ProductModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "product_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		// map supaya is_active=false tetap ter-update
		return tx.Model(&out).Updates(map[string]any{
			"product_name":        in.Name,
			"product_description": in.Description,
			"product_price_cents": in.PriceCents,
			"product_image_url":   in.ImageURL,
			"product_category":    in.Category,
			"product_is_active":   in.IsActive,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete hard delete. Order lama tetap ada (snapshot nama & harga), referensinya di-null-kan.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&orderModel.OrderModel{}).
			Where("order_product_id = ?", id).
			Update("order_product_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ProductModel{}, "product_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		log.Printf("[INFO] produk dihapus: %s", id)
		return nil
	})
}

// UploadImage konversi ke WebP lalu simpan; return URL publik.
func (s *Service) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	webpData, err := storage.ConvertToWebP(data, storage.DefaultWebPOptions())
	if err != nil {
		return "", err
	}
	obj, err := s.Blob.Upload(ctx, s.Folder, storage.WebPFilename(filename), "image/webp", webpData)
	if err != nil {
		log.Printf("[ERROR] upload gambar produk: %v", err)
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}
	return obj.URL, nil
}
