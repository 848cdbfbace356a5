package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"vagsociety_backend/internals/features/admins/auth/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ====================== ADMIN ====================== */

func FindAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*model.AdminUserModel, error) {
	var a model.AdminUserModel
	if err := db.WithContext(ctx).
		Where("admin_user_email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func FindAdminByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AdminUserModel, error) {
	var a model.AdminUserModel
	if err := db.WithContext(ctx).First(&a, "admin_user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAdmin buat admin baru atau update nama + hash password kalau email sudah ada.
func UpsertAdmin(ctx context.Context, db *gorm.DB, a *model.AdminUserModel) error {
	a.AdminUserEmail = strings.ToLower(strings.TrimSpace(a.AdminUserEmail))
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_user_email"}},
		DoUpdates: clause.AssignmentColumns([]string{"admin_user_name", "admin_user_password_hash", "admin_user_updated_at"}),
	}).Create(a).Error
}

/* ====================== BLACKLIST ====================== */

func BlacklistToken(ctx context.Context, db *gorm.DB, hash string, exp time.Time) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.AdminTokenBlacklistModel{TokenHash: hash, ExpiredAt: exp.UTC()}).Error
}

func IsTokenBlacklisted(ctx context.Context, db *gorm.DB, hash string) (bool, error) {
	var row model.AdminTokenBlacklistModel
	err := db.WithContext(ctx).Where("token_hash = ?", hash).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PurgeExpiredBlacklist hapus entri yang exp-nya sudah lewat (token toh sudah tidak valid).
func PurgeExpiredBlacklist(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	before = before.UTC()
	res := db.WithContext(ctx).Where("expired_at < ?", before).Delete(&model.AdminTokenBlacklistModel{})
	return res.RowsAffected, res.Error
}
