package controller

import (
	"errors"
	"log"
	"strings"

	"vagsociety_backend/internals/features/shop/orders/dto"
	"vagsociety_backend/internals/features/shop/orders/model"
	"vagsociety_backend/internals/features/shop/orders/service"
	helper "vagsociety_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderController struct {
	Svc *service.Service
}

func NewOrderController(svc *service.Service) *OrderController {
	return &OrderController{Svc: svc}
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON)
}

// =========================
// POST /api/public/orders/checkout
// =========================
func (ctrl *OrderController) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, dto.Message(req.Language, dto.MsgCartInvalid))
		}
	} else {
		var err error
		req, err = dto.CheckoutRequestFromForm(func(k string) string { return c.FormValue(k) })
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, dto.Message(req.Language, dto.MsgCartInvalid))
		}
	}

	req.Customer.Normalize()
	lang := req.Language
	if verrs := req.Customer.Validate(); verrs != nil {
		return helper.JsonValidationError(c, verrs.First, verrs.Fields)
	}

	lines, err := service.NormalizeItems(req.Items)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		msg := dto.Message(lang, dto.MsgCartEmpty)
		return helper.JsonValidationError(c, msg, map[string][]string{"items": {msg}})
	case errors.Is(err, service.ErrInvalidItem):
		msg := dto.Message(lang, dto.MsgCartInvalid)
		return helper.JsonValidationError(c, msg, map[string][]string{"items": {msg}})
	}

	res, err := ctrl.Svc.Checkout(c.UserContext(), req.Customer, lines)
	if err != nil {
		if errors.Is(err, service.ErrStaleCart) {
			return helper.JsonError(c, fiber.StatusConflict, dto.Message(lang, dto.MsgStaleCart))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, dto.Message(lang, dto.MsgOrderFailed))
	}
	return helper.JsonCreated(c, dto.Message(lang, dto.MsgOrderReceived), res)
}

// =========================
// POST /api/public/orders (satu produk, qty 1)
// =========================
func (ctrl *OrderController) PlaceSingle(c *fiber.Ctx) error {
	var req dto.SingleOrderRequest
	if isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
		}
	} else {
		req = dto.SingleOrderRequestFromForm(func(k string) string { return c.FormValue(k) })
	}

	req.Customer.Normalize()
	lang := req.Language
	if verrs := req.Customer.Validate(); verrs != nil {
		return helper.JsonValidationError(c, verrs.First, verrs.Fields)
	}
	pid, err := uuid.Parse(strings.TrimSpace(req.ProductID))
	if err != nil {
		msg := dto.Message(lang, dto.MsgProductUnavailable)
		return helper.JsonValidationError(c, msg, map[string][]string{"productId": {msg}})
	}

	res, err := ctrl.Svc.PlaceSingle(c.UserContext(), req.Customer, pid)
	if err != nil {
		if errors.Is(err, service.ErrStaleCart) {
			return helper.JsonError(c, fiber.StatusConflict, dto.Message(lang, dto.MsgProductUnavailable))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, dto.Message(lang, dto.MsgOrderFailed))
	}
	return helper.JsonCreated(c, dto.Message(lang, dto.MsgOrderReceived), res)
}

// =========================
// GET /api/a/orders?status=&ref=
// =========================
func (ctrl *OrderController) List(c *fiber.Ctx) error {
	filter := service.ListFilter{CheckoutRef: c.Query("ref")}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, err := model.ParseOrderStatus(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus PENDING, DECLINED, atau SHIPPED")
		}
		filter.Status = &st
	}

	paging := helper.ResolvePaging(c, 20, 100)
	filter.Offset, filter.Limit = paging.Offset, paging.Limit

	res, err := ctrl.Svc.List(c.UserContext(), filter)
	if err != nil {
		log.Printf("[ERROR] list order: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data order")
	}
	return helper.JsonListEx(c, "ok",
		dto.ToOrderDTOs(res.Rows),
		helper.BuildPaginationFromPage(res.Total, paging.Page, paging.PerPage),
		fiber.Map{"counts": res.Counts},
	)
}

func (ctrl *OrderController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID order tidak valid")
	}
	o, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return mapError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToOrderDTO(*o))
}

// =========================
// PATCH /api/a/orders/:id/status
// =========================
func (ctrl *OrderController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID order tidak valid")
	}
	var req dto.UpdateStatusRequest
	if isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
		}
	} else {
		req.Status = c.FormValue("status")
	}

	o, err := ctrl.Svc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return mapError(c, err)
	}
	return helper.JsonUpdated(c, "Status order diperbarui", dto.ToOrderDTO(*o))
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Order tidak ditemukan")
	case errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonValidationError(c, "status harus PENDING, DECLINED, atau SHIPPED",
			map[string][]string{"status": {"PENDING | DECLINED | SHIPPED"}})
	}
	log.Printf("[ERROR] order: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
