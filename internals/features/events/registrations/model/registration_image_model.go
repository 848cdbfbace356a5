package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RegistrationImageModel struct {
	RegistrationImageID             uuid.UUID `gorm:"column:registration_image_id;type:uuid;primaryKey" json:"registration_image_id"`
	RegistrationImageRegistrationID uuid.UUID `gorm:"column:registration_image_registration_id;type:uuid;not null;index" json:"registration_image_registration_id"`
	RegistrationImageURL            string    `gorm:"column:registration_image_url;type:text;not null" json:"registration_image_url"`
	RegistrationImageObjectKey      string    `gorm:"column:registration_image_object_key;type:text" json:"-"`
	RegistrationImageContentType    string    `gorm:"column:registration_image_content_type;type:varchar(40)" json:"registration_image_content_type"`
	RegistrationImageSizeBytes      int64     `gorm:"column:registration_image_size_bytes" json:"registration_image_size_bytes"`

	// width/height/format dari storage (kalau tersedia)
	RegistrationImageMeta datatypes.JSONMap `gorm:"column:registration_image_meta" json:"registration_image_meta,omitempty"`

	RegistrationImageCreatedAt time.Time `gorm:"column:registration_image_created_at;autoCreateTime" json:"registration_image_created_at"`
}

func (RegistrationImageModel) TableName() string {
	return "event_registration_images"
}

func (m *RegistrationImageModel) BeforeCreate(tx *gorm.DB) error {
	if m.RegistrationImageID == uuid.Nil {
		m.RegistrationImageID = uuid.New()
	}
	return nil
}
