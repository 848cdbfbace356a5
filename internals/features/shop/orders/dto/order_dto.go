package dto

import (
	"errors"
	"strings"
	"time"

	"vagsociety_backend/internals/features/shop/orders/model"
	helper "vagsociety_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const MaxLineQuantity = 10

var ErrBadCart = errors.New("data keranjang tidak valid")

/* =========================================================
   REQUEST
========================================================= */

type CheckoutItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Customer data pembeli (dipakai checkout & order satu produk).
type Customer struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=120"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Phone           string `json:"phone" validate:"required,min=6,max=40"`
	ShippingAddress string `json:"shippingAddress" validate:"required,min=10"`
	Language        string `json:"language"`
}

func (c *Customer) Normalize() {
	c.FullName = helper.SanitizeText(c.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.ShippingAddress = helper.SanitizeText(c.ShippingAddress)
	c.Language = Lang(c.Language)
}

func (c Customer) Validate() *helper.ValidationErrors {
	return helper.ValidateStruct(c, FieldMessages(c.Language))
}

type CheckoutRequest struct {
	Customer
	Items []CheckoutItem `json:"items"`
}

// CheckoutRequestFromForm: form biasa dengan field "cart" berisi JSON item.
func CheckoutRequestFromForm(get func(string) string) (CheckoutRequest, error) {
	r := CheckoutRequest{Customer: customerFromForm(get)}
	raw := strings.TrimSpace(get("cart"))
	if raw == "" {
		raw = "[]"
	}
	if err := sonic.UnmarshalString(raw, &r.Items); err != nil {
		return r, ErrBadCart
	}
	return r, nil
}

type SingleOrderRequest struct {
	Customer
	ProductID string `json:"productId"`
}

func SingleOrderRequestFromForm(get func(string) string) SingleOrderRequest {
	return SingleOrderRequest{Customer: customerFromForm(get), ProductID: strings.TrimSpace(get("productId"))}
}

func customerFromForm(get func(string) string) Customer {
	return Customer{
		FullName:        get("fullName"),
		Email:           get("email"),
		Phone:           get("phone"),
		ShippingAddress: get("shippingAddress"),
		Language:        get("language"),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

/* =========================================================
   RESPONSE
========================================================= */

type OrderDTO struct {
	ID              uuid.UUID  `json:"id"`
	CheckoutRef     string     `json:"checkout_ref"`
	ProductID       *uuid.UUID `json:"product_id"`
	ProductName     string     `json:"product_name"`
	UnitPriceCents  int64      `json:"unit_price_cents"`
	Quantity        int        `json:"quantity"`
	LineTotalCents  int64      `json:"line_total_cents"`
	LineTotalLabel  string     `json:"line_total_label"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	ShippingAddress string     `json:"shipping_address"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToOrderDTO(m model.OrderModel) OrderDTO {
	return OrderDTO{
		ID:              m.OrderID,
		CheckoutRef:     m.OrderCheckoutRef,
		ProductID:       m.OrderProductID,
		ProductName:     m.OrderProductNameSnapshot,
		UnitPriceCents:  m.OrderUnitPriceCents,
		Quantity:        m.OrderQuantity,
		LineTotalCents:  m.LineTotalCents(),
		LineTotalLabel:  helper.FormatPrice(m.LineTotalCents()),
		FullName:        m.OrderFullName,
		Email:           m.OrderEmail,
		Phone:           m.OrderPhone,
		ShippingAddress: m.OrderShippingAddress,
		Status:          string(m.OrderStatus),
		CreatedAt:       m.OrderCreatedAt,
		UpdatedAt:       m.OrderUpdatedAt,
	}
}

func ToOrderDTOs(rows []model.OrderModel) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToOrderDTO(r))
	}
	return out
}
