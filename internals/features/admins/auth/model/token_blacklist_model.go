package model

import "time"

// AdminTokenBlacklistModel token admin yang sudah logout sebelum exp.
// Disimpan hash-nya saja (sha256 hex).
type AdminTokenBlacklistModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"column:token_hash;type:varchar(64);not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AdminTokenBlacklistModel) TableName() string {
	return "admin_token_blacklist"
}
