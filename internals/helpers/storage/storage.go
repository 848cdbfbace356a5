// Package storage menyimpan file upload (foto registrasi, gambar produk) ke
// object storage dan mengembalikan URL publik yang awet.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"vagsociety_backend/internals/configs"
)

var ErrEmptyObject = errors.New("storage: data kosong")

// Object hasil upload yang tersimpan.
type Object struct {
	URL         string
	Key         string
	ContentType string
	Size        int64
	Meta        map[string]any
}

// BlobService kolaborator penyimpanan. Upload menerima bytes + folder,
// Delete dipakai untuk cleanup best-effort.
type BlobService interface {
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*Object, error)
	Delete(ctx context.Context, key string) error
	Driver() string
}

// NewFromConfig memilih driver sesuai STORAGE_DRIVER.
func NewFromConfig(cfg *configs.Config) (BlobService, error) {
	switch cfg.StorageDriver {
	case "cloudinary":
		return NewCloudinary(CloudinaryOptions{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		})
	case "oss":
		return NewOSS(OSSOptions{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			PublicBase: cfg.OSSPublicBase,
		})
	case "local", "":
		return NewLocal(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	case "memory":
		return NewMemoryWithBase(cfg.PublicBaseURL + "/blob"), nil
	default:
		return nil, fmt.Errorf("storage driver tidak dikenal: %q", cfg.StorageDriver)
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = strings.Trim(s, "-")
	if len(s) > 48 {
		s = strings.Trim(s[:48], "-")
	}
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// BuildObjectKey: <folder>/<slug>_<yyyymmdd_hhmmss>_<rand><ext>
func BuildObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	key := fmt.Sprintf("%s_%s_%s%s", slugify(base), time.Now().UTC().Format("20060102_150405"), randHex(3), ext)
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	return key
}
