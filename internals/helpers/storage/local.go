package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalService menulis file ke disk (UPLOAD_DIR) dan disajikan Fiber di /uploads.
type LocalService struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*LocalService, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("local storage: UPLOAD_DIR kosong")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("local storage: mkdir %s: %w", root, err)
	}
	return &LocalService{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalService) Driver() string { return "local" }

func (s *LocalService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*Object, error) {
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := BuildObjectKey(folder, filename)
	full := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("local storage: tulis %s: %w", key, err)
	}
	return &Object{
		URL:         s.BaseURL + "/" + key,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		Meta:        map[string]any{"driver": "local"},
	}, nil
}

func (s *LocalService) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	full := filepath.Join(s.Root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.Root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("local storage: key di luar root: %q", key)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
