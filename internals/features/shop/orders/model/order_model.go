package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDING"
	OrderDeclined OrderStatus = "DECLINED"
	OrderShipped  OrderStatus = "SHIPPED"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("status order tidak dikenal: %q", s)
	}
	return st, nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderDeclined, OrderShipped:
		return true
	}
	return false
}

// OrderModel menyimpan snapshot nama & harga produk saat checkout.
type OrderModel struct {
	OrderID                  uuid.UUID   `gorm:"column:order_id;type:uuid;primaryKey" json:"order_id"`
	OrderCheckoutRef         string      `gorm:"column:order_checkout_ref;type:varchar(16);not null;index" json:"order_checkout_ref"`
	OrderProductID           *uuid.UUID  `gorm:"column:order_product_id;type:uuid;index" json:"order_product_id"`
	OrderProductNameSnapshot string      `gorm:"column:order_product_name_snapshot;type:varchar(160);not null" json:"order_product_name_snapshot"`
	OrderUnitPriceCents      int64       `gorm:"column:order_unit_price_cents;not null" json:"order_unit_price_cents"`
	OrderQuantity            int         `gorm:"column:order_quantity;not null" json:"order_quantity"`
	OrderFullName            string      `gorm:"column:order_full_name;type:varchar(120);not null" json:"order_full_name"`
	OrderEmail               string      `gorm:"column:order_email;type:varchar(255);not null;index" json:"order_email"`
	OrderPhone               string      `gorm:"column:order_phone;type:varchar(40);not null" json:"order_phone"`
	OrderShippingAddress     string      `gorm:"column:order_shipping_address;type:text;not null" json:"order_shipping_address"`
	OrderStatus              OrderStatus `gorm:"column:order_status;type:varchar(16);not null;default:PENDING;index" json:"order_status"`
	OrderCreatedAt           time.Time   `gorm:"column:order_created_at;autoCreateTime;index" json:"order_created_at"`
	OrderUpdatedAt           time.Time   `gorm:"column:order_updated_at;autoUpdateTime" json:"order_updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.OrderID == uuid.Nil {
		m.OrderID = uuid.New()
	}
	if m.OrderStatus == "" {
		m.OrderStatus = OrderPending
	}
	return nil
}

func (m *OrderModel) LineTotalCents() int64 {
	return m.OrderUnitPriceCents * int64(m.OrderQuantity)
}
