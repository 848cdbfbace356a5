package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"vagsociety_backend/internals/features/shop/orders/dto"
	"vagsociety_backend/internals/features/shop/orders/model"
	productModel "vagsociety_backend/internals/features/shop/products/model"
	helper "vagsociety_backend/internals/helpers"
	"vagsociety_backend/internals/mailer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("order tidak ditemukan")
	ErrEmptyCart     = errors.New("keranjang kosong")
	ErrInvalidItem   = errors.New("item keranjang tidak valid")
	ErrStaleCart     = errors.New("sebagian produk sudah tidak tersedia")
	ErrInvalidStatus = errors.New("status order tidak valid")
)

type Options struct {
	AdminEmail string
}

type Service struct {
	DB   *gorm.DB
	Mail mailer.Sender
	Opt  Options
}

func New(db *gorm.DB, mail mailer.Sender, opt Options) *Service {
	return &Service{DB: db, Mail: mail, Opt: opt}
}

// Line satu baris keranjang yang sudah dinormalisasi.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// NormalizeItems: buang id kosong / qty ≤ 0, gabung id sama (qty dijumlah),
// clamp ke MaxLineQuantity, urutan kemunculan pertama dipertahankan.
func NormalizeItems(items []dto.CheckoutItem) ([]Line, error) {
	idx := make(map[uuid.UUID]int, len(items))
	out := make([]Line, 0, len(items))
	for _, it := range items {
		raw := strings.TrimSpace(it.ProductID)
		if raw == "" || it.Quantity <= 0 {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidItem, raw)
		}
		// clamp dulu sebelum dijumlah supaya qty besar tidak overflow
		qty := min(it.Quantity, dto.MaxLineQuantity)
		if i, ok := idx[id]; ok {
			out[i].Quantity = min(out[i].Quantity+qty, dto.MaxLineQuantity)
			continue
		}
		idx[id] = len(out)
		out = append(out, Line{ProductID: id, Quantity: qty})
	}
	if len(out) == 0 {
		return nil, ErrEmptyCart
	}
	return out, nil
}

type PlacedLine struct {
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitCents int64     `json:"unit_price_cents"`
	LineCents int64     `json:"line_total_cents"`
	UnitLabel string    `json:"unit_price_label"`
	LineLabel string    `json:"line_total_label"`
}

type CheckoutResult struct {
	CheckoutRef   string         `json:"checkout_ref"`
	OrderIDs      []uuid.UUID    `json:"order_ids"`
	TotalCents    int64          `json:"total_cents"`
	TotalLabel    string         `json:"total_label"`
	Lines         []PlacedLine   `json:"lines"`
	Notifications mailer.Outcome `json:"notifications"`

	customer dto.Customer
}

// Checkout = Commit lalu NotifyPlaced. Email gagal tidak membatalkan order.
func (s *Service) Checkout(ctx context.Context, cust dto.Customer, lines []Line) (*CheckoutResult, error) {
	res, err := s.Commit(ctx, cust, lines)
	if err != nil {
		return nil, err
	}
	res.Notifications = s.NotifyPlaced(ctx, res)
	return res, nil
}

// PlaceSingle order satu produk qty 1 (tombol "Naruči" di kartu produk).
func (s *Service) PlaceSingle(ctx context.Context, cust dto.Customer, productID uuid.UUID) (*CheckoutResult, error) {
	return s.Checkout(ctx, cust, []Line{{ProductID: productID, Quantity: 1}})
}

// Commit ambil ulang produk aktif dari DB; kalau ada yang hilang → ErrStaleCart
// tanpa menulis apa pun. Semua baris order dibuat dalam satu transaksi dengan
// checkout_ref yang sama. Harga & total selalu dari DB.
func (s *Service) Commit(ctx context.Context, cust dto.Customer, lines []Line) (*CheckoutResult, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > dto.MaxLineQuantity {
			return nil, fmt.Errorf("%w: qty %d", ErrInvalidItem, l.Quantity)
		}
		ids = append(ids, l.ProductID)
	}

	res := &CheckoutResult{CheckoutRef: generateOrderRef(), customer: cust}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []productModel.ProductModel
		if err := tx.Where("product_id IN ? AND product_is_active = ?", ids, true).Find(&products).Error; err != nil {
			return err
		}
		if len(products) != len(ids) {
			return ErrStaleCart
		}
		byID := make(map[uuid.UUID]productModel.ProductModel, len(products))
		for _, p := range products {
			byID[p.ProductID] = p
		}

		orders := make([]model.OrderModel, 0, len(lines))
		for _, l := range lines {
			p := byID[l.ProductID]
			pid := p.ProductID
			orders = append(orders, model.OrderModel{
				OrderCheckoutRef:         res.CheckoutRef,
				OrderProductID:           &pid,
				OrderProductNameSnapshot: p.ProductName,
				OrderUnitPriceCents:      p.ProductPriceCents,
				OrderQuantity:            l.Quantity,
				OrderFullName:            cust.FullName,
				OrderEmail:               strings.ToLower(cust.Email),
				OrderPhone:               cust.Phone,
				OrderShippingAddress:     cust.ShippingAddress,
				OrderStatus:              model.OrderPending,
			})
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}

		for _, o := range orders {
			line := o.LineTotalCents()
			res.OrderIDs = append(res.OrderIDs, o.OrderID)
			res.TotalCents += line
			res.Lines = append(res.Lines, PlacedLine{
				OrderID:   o.OrderID,
				ProductID: *o.OrderProductID,
				Name:      o.OrderProductNameSnapshot,
				Quantity:  o.OrderQuantity,
				UnitCents: o.OrderUnitPriceCents,
				LineCents: line,
				UnitLabel: helper.FormatPrice(o.OrderUnitPriceCents),
				LineLabel: helper.FormatPrice(line),
			})
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStaleCart) {
			log.Printf("[ERROR] checkout gagal: %v", err)
		}
		return nil, err
	}
	res.TotalLabel = helper.FormatPrice(res.TotalCents)
	log.Printf("[INFO] checkout %s: %d baris, total %d", res.CheckoutRef, len(res.Lines), res.TotalCents)
	return res, nil
}

// NotifyPlaced email admin (sr) + konfirmasi pembeli (bahasa form).
func (s *Service) NotifyPlaced(ctx context.Context, res *CheckoutResult) mailer.Outcome {
	data := mailer.OrderMail{
		CheckoutRef:     res.CheckoutRef,
		FullName:        res.customer.FullName,
		Email:           res.customer.Email,
		Phone:           res.customer.Phone,
		ShippingAddress: res.customer.ShippingAddress,
		TotalLabel:      res.TotalLabel,
	}
	for _, id := range res.OrderIDs {
		data.OrderIDs = append(data.OrderIDs, id.String())
	}
	for _, l := range res.Lines {
		data.Lines = append(data.Lines, mailer.OrderMailLine{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitLabel: l.UnitLabel,
			LineLabel: l.LineLabel,
		})
	}

	var renders []func() (mailer.Message, error)
	if s.Opt.AdminEmail != "" {
		renders = append(renders, mailer.RenderFunc(mailer.OrderAdmin, "sr", s.Opt.AdminEmail, data))
	} else {
		log.Printf("[WARN] ADMIN_EMAIL kosong, notifikasi admin order %s dilewati", res.CheckoutRef)
	}
	renders = append(renders, mailer.RenderFunc(mailer.OrderBuyer, res.customer.Language, res.customer.Email, data))
	return mailer.NotifyRendered(ctx, s.Mail, renders...)
}

// generateOrderRef 8 karakter tanpa I, O, 1, 0 supaya mudah dibaca.
func generateOrderRef() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "ORD" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// UpdateStatus tanpa efek samping lain (tidak ada email).
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*model.OrderModel, error) {
	st, err := model.ParseOrderStatus(raw)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	res := s.DB.WithContext(ctx).Model(&model.OrderModel{}).
		Where("order_id = ?", id).
		Update("order_status", st)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.OrderModel, error) {
	var o model.OrderModel
	err := s.DB.WithContext(ctx).First(&o, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type ListFilter struct {
	Status      *model.OrderStatus
	CheckoutRef string
	Offset      int
	Limit       int
}

type ListResult struct {
	Rows   []model.OrderModel
	Total  int64
	Counts map[model.OrderStatus]int64
}

// List terbaru dulu + jumlah per status untuk tab admin.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	q := s.DB.WithContext(ctx).Model(&model.OrderModel{})
	if f.Status != nil {
		q = q.Where("order_status = ?", *f.Status)
	}
	if ref := strings.ToUpper(strings.TrimSpace(f.CheckoutRef)); ref != "" {
		q = q.Where("order_checkout_ref = ?", ref)
	}
	q = q.Session(&gorm.Session{})

	out := &ListResult{Counts: map[model.OrderStatus]int64{}}
	if err := q.Count(&out.Total).Error; err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if err := q.Order("order_created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&out.Rows).Error; err != nil {
		return nil, err
	}

	type row struct {
		Status model.OrderStatus
		N      int64
	}
	var counts []row
	if err := s.DB.WithContext(ctx).Model(&model.OrderModel{}).
		Select("order_status AS status, COUNT(*) AS n").
		Group("order_status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, st := range []model.OrderStatus{model.OrderPending, model.OrderDeclined, model.OrderShipped} {
		out.Counts[st] = 0
	}
	for _, c := range counts {
		out.Counts[c.Status] = c.N
	}
	return out, nil
}
