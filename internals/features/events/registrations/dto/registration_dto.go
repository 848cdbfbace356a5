package dto

import (
	"strings"
	"time"

	"vagsociety_backend/internals/features/events/registrations/model"
	helper "vagsociety_backend/internals/helpers"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST: form registrasi (multipart)
========================================================= */

type CreateRegistrationRequest struct {
	FullName            string `json:"fullName" form:"fullName" validate:"required,min=2,max=120"`
	Email               string `json:"email" form:"email" validate:"required,email,max=255"`
	Phone               string `json:"phone" form:"phone" validate:"required,min=6,max=40"`
	CarModel            string `json:"carModel" form:"carModel" validate:"required,min=2,max=120"`
	Country             string `json:"country" form:"country" validate:"required,min=2,max=80"`
	City                string `json:"city" form:"city" validate:"required,min=2,max=80"`
	ArrivingWithTrailer bool   `json:"arrivingWithTrailer" form:"-"`
	AdditionalInfo      string `json:"additionalInfo" form:"additionalInfo" validate:"max=1000"`
	Language            string `json:"language" form:"language"`
}

// FormValue cukup untuk fiber.Ctx.FormValue maupun url.Values.Get.
type FormValue func(key string) string

// ParseTrailerFlag: checkbox html mengirim "on"; juga terima true/1/yes/da.
func ParseTrailerFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes", "da":
		return true
	}
	return false
}

func FromForm(get FormValue) CreateRegistrationRequest {
	r := CreateRegistrationRequest{
		FullName:            get("fullName"),
		Email:               get("email"),
		Phone:               get("phone"),
		CarModel:            get("carModel"),
		Country:             get("country"),
		City:                get("city"),
		ArrivingWithTrailer: ParseTrailerFlag(get("arrivingWithTrailer")),
		AdditionalInfo:      get("additionalInfo"),
		Language:            get("language"),
	}
	r.Normalize()
	return r
}

func (r *CreateRegistrationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.CarModel = strings.TrimSpace(r.CarModel)
	r.Country = strings.TrimSpace(r.Country)
	r.City = strings.TrimSpace(r.City)
	r.AdditionalInfo = strings.TrimSpace(r.AdditionalInfo)
	r.Language = string(model.ParseLanguage(r.Language))
}

func (r CreateRegistrationRequest) Lang() model.Language {
	return model.ParseLanguage(r.Language)
}

// Validate mengembalikan nil kalau valid; pesan per field sesuai bahasa form.
func (r CreateRegistrationRequest) Validate() *helper.ValidationErrors {
	return helper.ValidateStruct(r, FieldMessages(r.Lang()))
}

func (r CreateRegistrationRequest) ToModel(id uuid.UUID) model.RegistrationModel {
	return model.RegistrationModel{
		RegistrationID:                  id,
		RegistrationFullName:            r.FullName,
		RegistrationEmail:               r.Email,
		RegistrationPhone:               r.Phone,
		RegistrationCarModel:            r.CarModel,
		RegistrationCountry:             r.Country,
		RegistrationCity:                r.City,
		RegistrationArrivingWithTrailer: r.ArrivingWithTrailer,
		RegistrationAdditionalInfo:      helper.SanitizeText(r.AdditionalInfo),
		RegistrationStatus:              model.RegistrationPending,
		RegistrationLanguage:            r.Lang(),
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type RegistrationImageDTO struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
}

type RegistrationDTO struct {
	ID                  uuid.UUID              `json:"id"`
	FullName            string                 `json:"full_name"`
	Email               string                 `json:"email"`
	Phone               string                 `json:"phone"`
	CarModel            string                 `json:"car_model"`
	Country             string                 `json:"country"`
	City                string                 `json:"city"`
	ArrivingWithTrailer bool                   `json:"arriving_with_trailer"`
	AdditionalInfo      string                 `json:"additional_info,omitempty"`
	Status              string                 `json:"status"`
	Language            string                 `json:"language"`
	ReviewedAt          *time.Time             `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
	Images              []RegistrationImageDTO `json:"images"`
}

func ToRegistrationDTO(m model.RegistrationModel) RegistrationDTO {
	images := make([]RegistrationImageDTO, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, RegistrationImageDTO{
			ID:          img.RegistrationImageID,
			URL:         img.RegistrationImageURL,
			ContentType: img.RegistrationImageContentType,
			SizeBytes:   img.RegistrationImageSizeBytes,
		})
	}
	return RegistrationDTO{
		ID:                  m.RegistrationID,
		FullName:            m.RegistrationFullName,
		Email:               m.RegistrationEmail,
		Phone:               m.RegistrationPhone,
		CarModel:            m.RegistrationCarModel,
		Country:             m.RegistrationCountry,
		City:                m.RegistrationCity,
		ArrivingWithTrailer: m.RegistrationArrivingWithTrailer,
		AdditionalInfo:      m.RegistrationAdditionalInfo,
		Status:              string(m.RegistrationStatus),
		Language:            string(m.RegistrationLanguage),
		ReviewedAt:          m.RegistrationReviewedAt,
		CreatedAt:           m.RegistrationCreatedAt,
		UpdatedAt:           m.RegistrationUpdatedAt,
		Images:              images,
	}
}

func ToRegistrationDTOs(rows []model.RegistrationModel) []RegistrationDTO {
	out := make([]RegistrationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToRegistrationDTO(r))
	}
	return out
}
