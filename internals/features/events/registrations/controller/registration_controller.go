package controller

import (
	"errors"
	"log"
	"strings"

	"vagsociety_backend/internals/features/events/registrations/dto"
	"vagsociety_backend/internals/features/events/registrations/model"
	"vagsociety_backend/internals/features/events/registrations/service"
	helper "vagsociety_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegistrationController struct {
	Svc    *service.Service
	Policy service.UploadPolicy
}

func NewRegistrationController(svc *service.Service, policy service.UploadPolicy) *RegistrationController {
	return &RegistrationController{Svc: svc, Policy: policy}
}

// =========================
// POST /api/public/events/registrations
// =========================
func (ctrl *RegistrationController) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body harus multipart/form-data")
	}

	req := dto.FromForm(func(k string) string { return c.FormValue(k) })
	lang := req.Lang()

	if verrs := req.Validate(); verrs != nil {
		return helper.JsonValidationError(c, verrs.First, verrs.Fields)
	}

	files := service.CandidatesFromHeaders(form.File["carImages"], form.File["images"])
	photos, err := ctrl.Policy.Apply(files)
	if err != nil {
		var pe *service.PolicyError
		if errors.As(err, &pe) {
			msg := dto.UploadMessage(lang, pe.Code, ctrl.Policy.MinFiles, ctrl.Policy.MaxFiles,
				ctrl.Policy.MaxFileBytes>>20, ctrl.Policy.MaxTotalBytes>>20, pe.Filename)
			return helper.JsonValidationError(c, msg, map[string][]string{"carImages": {msg}})
		}
		log.Printf("[ERROR] baca file upload: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, dto.SubmitFailedMessage(lang))
	}

	res, err := ctrl.Svc.Submit(c.UserContext(), req, photos)
	if err != nil {
		if errors.Is(err, service.ErrStorage) {
			return helper.JsonError(c, fiber.StatusBadGateway, dto.SubmitFailedMessage(lang))
		}
		log.Printf("[ERROR] submit registrasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, dto.SubmitFailedMessage(lang))
	}

	return helper.JsonCreated(c, dto.SubmitSuccessMessage(lang), fiber.Map{
		"registration":  dto.ToRegistrationDTO(res.Registration),
		"notifications": res.Notifications,
	})
}

// =========================
// GET /api/a/registrations?status=&page=&per_page=
// =========================
func (ctrl *RegistrationController) List(c *fiber.Ctx) error {
	var filter service.ListFilter
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, err := model.ParseRegistrationStatus(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus PENDING, APPROVED, atau DECLINED")
		}
		filter.Status = &st
	}

	paging := helper.ResolvePaging(c, 20, 100)
	filter.Offset, filter.Limit = paging.Offset, paging.Limit

	res, err := ctrl.Svc.List(c.UserContext(), filter)
	if err != nil {
		log.Printf("[ERROR] list registrasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data registrasi")
	}

	return helper.JsonListEx(c, "ok",
		dto.ToRegistrationDTOs(res.Rows),
		helper.BuildPaginationFromPage(res.Total, paging.Page, paging.PerPage),
		fiber.Map{"counts": res.Counts},
	)
}

// =========================
// GET /api/a/registrations/:id
// =========================
func (ctrl *RegistrationController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID registrasi tidak valid")
	}
	reg, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return ctrl.mapError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToRegistrationDTO(*reg))
}

// =========================
// POST /api/a/registrations/:id/approve | /decline
// =========================
func (ctrl *RegistrationController) Approve(c *fiber.Ctx) error {
	return ctrl.decide(c, model.RegistrationApproved)
}

func (ctrl *RegistrationController) Decline(c *fiber.Ctx) error {
	return ctrl.decide(c, model.RegistrationDeclined)
}

func (ctrl *RegistrationController) decide(c *fiber.Ctx, target model.RegistrationStatus) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID registrasi tidak valid")
	}

	res, err := ctrl.Svc.Decide(c.UserContext(), id, target)
	if err != nil {
		return ctrl.mapError(c, err)
	}

	msg := "Status registrasi diperbarui"
	if !res.Changed {
		msg = "Registrasi sudah berstatus " + string(target)
	}
	return helper.JsonOK(c, msg, fiber.Map{
		"registration":  dto.ToRegistrationDTO(res.Registration),
		"changed":       res.Changed,
		"notifications": res.Notifications,
	})
}

func (ctrl *RegistrationController) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
	case errors.Is(err, service.ErrAlreadyDecided):
		return helper.JsonError(c, fiber.StatusConflict, "Registrasi sudah diputuskan dengan status lain")
	case errors.Is(err, service.ErrInvalidDecision):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	log.Printf("[ERROR] registrasi: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
