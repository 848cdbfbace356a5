package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUserModel struct {
	AdminUserID           uuid.UUID `gorm:"column:admin_user_id;type:uuid;primaryKey" json:"admin_user_id"`
	AdminUserEmail        string    `gorm:"column:admin_user_email;type:varchar(255);not null;uniqueIndex" json:"admin_user_email"`
	AdminUserName         string    `gorm:"column:admin_user_name;type:varchar(120)" json:"admin_user_name"`
	AdminUserPasswordHash string    `gorm:"column:admin_user_password_hash;type:text;not null" json:"-"`
	AdminUserCreatedAt    time.Time `gorm:"column:admin_user_created_at;autoCreateTime" json:"admin_user_created_at"`
	AdminUserUpdatedAt    time.Time `gorm:"column:admin_user_updated_at;autoUpdateTime" json:"admin_user_updated_at"`
}

func (AdminUserModel) TableName() string {
	return "admin_users"
}

func (m *AdminUserModel) BeforeCreate(tx *gorm.DB) error {
	if m.AdminUserID == uuid.Nil {
		m.AdminUserID = uuid.New()
	}
	return nil
}
