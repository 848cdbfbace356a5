package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryOptions struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string // kosong = https://api.cloudinary.com; diisi di test
}

// CloudinaryService upload bertanda tangan lewat SDK resmi.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(opt CloudinaryOptions) (*CloudinaryService, error) {
	if opt.CloudName == "" || opt.APIKey == "" || opt.APISecret == "" {
		return nil, errors.New("cloudinary: cloud name / api key / api secret wajib")
	}
	cld, err := cloudinary.NewFromParams(opt.CloudName, opt.APIKey, opt.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if opt.BaseURL != "" {
		cld.Config.API.UploadPrefix = strings.TrimRight(opt.BaseURL, "/")
	}
	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) Driver() string { return "cloudinary" }

func (s *CloudinaryService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*Object, error) {
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       strings.Trim(folder, "/"),
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload %s: %w", filename, err)
	}
	// error API dikembalikan di body, bukan sebagai err
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload %s: %s", filename, res.Error.Message)
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return nil, errors.New("cloudinary upload: respons tanpa secure_url/public_id")
	}

	size := int64(res.Bytes)
	if size == 0 {
		size = int64(len(data))
	}
	return &Object{
		URL:         res.SecureURL,
		Key:         res.PublicID,
		ContentType: contentType,
		Size:        size,
		Meta: map[string]any{
			"driver": "cloudinary",
			"format": res.Format,
			"width":  res.Width,
			"height": res.Height,
		},
	}, nil
}

// Delete destroy berdasarkan public_id; "not found" dianggap sukses.
func (s *CloudinaryService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key, ResourceType: "image"})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: result %q", res.Result)
	}
	return nil
}
