package admins

import (
	"context"
	"errors"
	"log"
	"strings"

	"vagsociety_backend/internals/configs"
	adminService "vagsociety_backend/internals/features/admins/auth/service"

	"gorm.io/gorm"
)

var ErrMissingSeedEnv = errors.New("ADMIN_SEED_EMAIL / ADMIN_SEED_PASSWORD belum diset")

// SeedAdminFromEnv upsert admin dari ADMIN_SEED_EMAIL / ADMIN_SEED_PASSWORD / ADMIN_SEED_NAME.
func SeedAdminFromEnv(ctx context.Context, db *gorm.DB) error {
	email := strings.TrimSpace(configs.GetEnv("ADMIN_SEED_EMAIL"))
	password := configs.GetEnv("ADMIN_SEED_PASSWORD")
	name := configs.GetEnv("ADMIN_SEED_NAME", "Admin")
	if email == "" || password == "" {
		return ErrMissingSeedEnv
	}

	admin, err := adminService.EnsureAdmin(ctx, db, email, password, name)
	if err != nil {
		return err
	}
	log.Printf("[INFO] admin siap: %s (%s)", admin.AdminUserEmail, admin.AdminUserID)
	return nil
}
