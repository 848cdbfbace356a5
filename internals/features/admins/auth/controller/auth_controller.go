package controller

import (
	"errors"
	"log"
	"time"

	"vagsociety_backend/internals/features/admins/auth/dto"
	"vagsociety_backend/internals/features/admins/auth/service"
	helper "vagsociety_backend/internals/helpers"
	helperAuth "vagsociety_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	Svc          *service.Service
	CookieSecure bool
}

func NewAuthController(svc *service.Service, cookieSecure bool) *AuthController {
	return &AuthController{Svc: svc, CookieSecure: cookieSecure}
}

// POST /api/auth/admin/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if verrs := req.Validate(); verrs != nil {
		return helper.JsonValidationError(c, verrs.First, verrs.Fields)
	}

	sess, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Pogrešan email ili lozinka")
		}
		log.Printf("[ERROR] login admin: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	ac.setCookie(c, sess.Token, sess.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		Admin:       dto.ToAdminDTO(sess.Admin),
	})
}

// POST /api/auth/admin/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helperAuth.ExtractBearerToken(c, service.CookieName)
	if err := ac.Svc.Logout(c.UserContext(), raw); err != nil {
		log.Printf("[WARN] blacklist token gagal: %v", err)
	}
	ac.setCookie(c, "", time.Unix(0, 0))
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/a/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helperAuth.GetAdminIDFromToken(c)
	if err != nil {
		return err
	}
	admin, err := ac.Svc.Me(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Admin tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, "ok", dto.ToAdminDTO(*admin))
}

func (ac *AuthController) setCookie(c *fiber.Ctx, value string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     service.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   ac.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
