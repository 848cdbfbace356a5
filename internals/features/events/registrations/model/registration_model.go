package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationDeclined RegistrationStatus = "DECLINED"
)

func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	st := RegistrationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("status registrasi tidak dikenal: %q", s)
	}
	return st, nil
}

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationDeclined:
		return true
	}
	return false
}

// IsDecision: hanya APPROVED/DECLINED yang boleh jadi target moderasi.
func (s RegistrationStatus) IsDecision() bool {
	return s == RegistrationApproved || s == RegistrationDeclined
}

// CanTransitionTo: PENDING -> APPROVED|DECLINED, sekali saja.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	switch s {
	case RegistrationPending:
		return next.IsDecision()
	case RegistrationApproved, RegistrationDeclined:
		return false
	}
	return false
}

type Language string

const (
	LanguageSerbian Language = "sr"
	LanguageEnglish Language = "en"
)

// ParseLanguage fallback ke sr untuk nilai kosong/asing.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return LanguageEnglish
	default:
		return LanguageSerbian
	}
}

type RegistrationModel struct {
	RegistrationID                  uuid.UUID          `gorm:"column:registration_id;type:uuid;primaryKey" json:"registration_id"`
	RegistrationFullName            string             `gorm:"column:registration_full_name;type:varchar(120);not null" json:"registration_full_name"`
	RegistrationEmail               string             `gorm:"column:registration_email;type:varchar(255);not null;index" json:"registration_email"`
	RegistrationPhone               string             `gorm:"column:registration_phone;type:varchar(40);not null" json:"registration_phone"`
	RegistrationCarModel            string             `gorm:"column:registration_car_model;type:varchar(120);not null" json:"registration_car_model"`
	RegistrationCountry             string             `gorm:"column:registration_country;type:varchar(80);not null" json:"registration_country"`
	RegistrationCity                string             `gorm:"column:registration_city;type:varchar(80);not null" json:"registration_city"`
	RegistrationArrivingWithTrailer bool               `gorm:"column:registration_arriving_with_trailer;not null;default:false" json:"registration_arriving_with_trailer"`
	RegistrationAdditionalInfo      string             `gorm:"column:registration_additional_info;type:text" json:"registration_additional_info"`
	RegistrationStatus              RegistrationStatus `gorm:"column:registration_status;type:varchar(16);not null;default:PENDING;index" json:"registration_status"`
	RegistrationLanguage            Language           `gorm:"column:registration_language;type:varchar(2);not null;default:sr" json:"registration_language"`
	RegistrationReviewedAt          *time.Time         `gorm:"column:registration_reviewed_at" json:"registration_reviewed_at,omitempty"`
	RegistrationCreatedAt           time.Time          `gorm:"column:registration_created_at;autoCreateTime;index" json:"registration_created_at"`
	RegistrationUpdatedAt           time.Time          `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at"`

	Images []RegistrationImageModel `gorm:"foreignKey:RegistrationImageRegistrationID;references:RegistrationID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (RegistrationModel) TableName() string {
	return "event_registrations"
}

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.RegistrationID == uuid.Nil {
		m.RegistrationID = uuid.New()
	}
	if m.RegistrationStatus == "" {
		m.RegistrationStatus = RegistrationPending
	}
	if m.RegistrationLanguage == "" {
		m.RegistrationLanguage = LanguageSerbian
	}
	return nil
}
