package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSSOptions struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
	PublicBase    string // optional CDN base, mis. https://cdn.vagsocietyserbia.com
}

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSS(opt OSSOptions) (*OSSService, error) {
	if opt.Endpoint == "" || opt.AccessKey == "" || opt.SecretKey == "" || opt.Bucket == "" {
		return nil, fmt.Errorf("oss: endpoint/access key/secret key/bucket wajib")
	}

	var (
		client *oss.Client
		err    error
	)
	if opt.SecurityToken != "" {
		client, err = oss.New(opt.Endpoint, opt.AccessKey, opt.SecretKey, oss.SecurityToken(opt.SecurityToken))
	} else {
		client, err = oss.New(opt.Endpoint, opt.AccessKey, opt.SecretKey)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(opt.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(opt.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[WARN] OSS: skip cek lokasi karena AccessDenied (bucket=%s)", opt.Bucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[INFO] OSS bucket %s lokasi: %s", opt.Bucket, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   opt.Endpoint,
		BucketName: opt.Bucket,
		PublicBase: strings.TrimRight(opt.PublicBase, "/"),
	}, nil
}

func (s *OSSService) Driver() string { return "oss" }

func (s *OSSService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*Object, error) {
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := BuildObjectKey(folder, filename)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return nil, fmt.Errorf("oss put %s: %w", key, err)
	}
	return &Object{
		URL:         s.PublicURL(key),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		Meta:        map[string]any{"driver": "oss", "bucket": s.BucketName},
	}, nil
}

func (s *OSSService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	return ossPublicURL(s.PublicBase, s.Endpoint, s.BucketName, key)
}

func ossPublicURL(publicBase, endpoint, bucket, key string) string {
	if key == "" {
		return ""
	}
	if publicBase != "" {
		return strings.TrimRight(publicBase, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", bucket, end, key)
}
