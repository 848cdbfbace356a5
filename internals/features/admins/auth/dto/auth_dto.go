package dto

import (
	"strings"
	"time"

	"vagsociety_backend/internals/features/admins/auth/model"
	helper "vagsociety_backend/internals/helpers"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var loginMessages = helper.FieldMessages{
	"email":    "Unesite ispravan email",
	"password": "Lozinka mora imati najmanje 6 karaktera",
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() *helper.ValidationErrors {
	return helper.ValidateStruct(r, loginMessages)
}

type AdminDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAdminDTO(m model.AdminUserModel) AdminDTO {
	return AdminDTO{
		ID:        m.AdminUserID,
		Email:     m.AdminUserEmail,
		Name:      m.AdminUserName,
		CreatedAt: m.AdminUserCreatedAt,
	}
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Admin       AdminDTO  `json:"admin"`
}
