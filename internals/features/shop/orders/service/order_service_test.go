package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"vagsociety_backend/internals/databases/dbtest"
	"vagsociety_backend/internals/features/shop/orders/dto"
	"vagsociety_backend/internals/features/shop/orders/model"
	productModel "vagsociety_backend/internals/features/shop/products/model"
	"vagsociety_backend/internals/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, cents int64, active bool) productModel.ProductModel {
	t.Helper()
	p := productModel.ProductModel{
		ProductName:        name,
		ProductDescription: "Opis proizvoda " + name,
		ProductPriceCents:  cents,
		ProductImageURL:    "/img/" + name + ".webp",
		ProductCategory:    productModel.CategoryApparel,
		ProductIsActive:    true,
	}
	require.NoError(t, db.Create(&p).Error)
	if !active {
		require.NoError(t, db.Model(&p).Update("product_is_active", false).Error)
	}
	return p
}

func buyer(lang string) dto.Customer {
	return dto.Customer{
		FullName:        "Nikola Nikolić",
		Email:           "nikola@example.com",
		Phone:           "0651112233",
		ShippingAddress: "Knez Mihailova 10, Beograd",
		Language:        lang,
	}
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&model.OrderModel{}).Count(&n).Error)
	return n
}

func TestNormalizeItems(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()

	lines, err := NormalizeItems([]dto.CheckoutItem{
		{ProductID: a, Quantity: 4},
		{ProductID: "", Quantity: 3},
		{ProductID: b, Quantity: 0},
		{ProductID: b, Quantity: 2},
		{ProductID: a, Quantity: 8},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, a, lines[0].ProductID.String())
	assert.Equal(t, 10, lines[0].Quantity)
	assert.Equal(t, b, lines[1].ProductID.String())
	assert.Equal(t, 2, lines[1].Quantity)

	lines, err = NormalizeItems([]dto.CheckoutItem{{ProductID: a, Quantity: 25}})
	require.NoError(t, err)
	assert.Equal(t, 10, lines[0].Quantity)

	_, err = NormalizeItems([]dto.CheckoutItem{{ProductID: "", Quantity: 1}, {ProductID: a, Quantity: -1}})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = NormalizeItems(nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = NormalizeItems([]dto.CheckoutItem{{ProductID: "bukan-uuid", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNormalizeItemsHugeQuantityStaysClamped(t *testing.T) {
	a := uuid.NewString()
	lines, err := NormalizeItems([]dto.CheckoutItem{
		{ProductID: a, Quantity: 1},
		{ProductID: a, Quantity: math.MaxInt},
		{ProductID: a, Quantity: math.MaxInt},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, dto.MaxLineQuantity, lines[0].Quantity)
}

func TestCommitRejectsOutOfRangeQuantity(t *testing.T) {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{}
	svc := New(db, rec, Options{AdminEmail: "admin@example.com"})
	p := seedProduct(t, db, "duks", 5490, true)

	for _, qty := range []int{0, -3, dto.MaxLineQuantity + 1, math.MinInt} {
		_, err := svc.Checkout(context.Background(), buyer("sr"), []Line{{ProductID: p.ProductID, Quantity: qty}})
		assert.ErrorIs(t, err, ErrInvalidItem, "qty %d", qty)
	}
	assert.Zero(t, countOrders(t, db))
	assert.Empty(t, rec.Messages())
}

func TestCheckoutMergesLinesAndUsesDBPrices(t *testing.T) {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{}
	svc := New(db, rec, Options{AdminEmail: "admin@example.com"})

	shirt := seedProduct(t, db, "majica", 2500, true)
	hat := seedProduct(t, db, "kapa", 1250, true)

	lines, err := NormalizeItems([]dto.CheckoutItem{
		{ProductID: shirt.ProductID.String(), Quantity: 4},
		{ProductID: hat.ProductID.String(), Quantity: 1},
		{ProductID: shirt.ProductID.String(), Quantity: 8},
	})
	require.NoError(t, err)

	res, err := svc.Checkout(context.Background(), buyer("en"), lines)
	require.NoError(t, err)
	assert.Len(t, res.CheckoutRef, 8)
	require.Len(t, res.OrderIDs, 2)
	assert.Equal(t, int64(10*2500+1250), res.TotalCents)
	assert.Equal(t, "262,50 €", res.TotalLabel)

	var orders []model.OrderModel
	require.NoError(t, db.Order("order_quantity DESC").Find(&orders).Error)
	require.Len(t, orders, 2)
	assert.Equal(t, 10, orders[0].OrderQuantity)
	assert.Equal(t, int64(2500), orders[0].OrderUnitPriceCents)
	assert.Equal(t, "majica", orders[0].OrderProductNameSnapshot)
	assert.Equal(t, model.OrderPending, orders[0].OrderStatus)
	assert.Equal(t, res.CheckoutRef, orders[1].OrderCheckoutRef)

	var sum int64
	for _, o := range orders {
		sum += o.LineTotalCents()
	}
	assert.Equal(t, res.TotalCents, sum)

	assert.Equal(t, 2, res.Notifications.Sent)
	buyerMail := rec.To("nikola@example.com")
	require.Len(t, buyerMail, 1)
	assert.Equal(t, "Order confirmation - VagSocietySerbia", buyerMail[0].Subject)
	assert.Contains(t, buyerMail[0].Text, "majica x10")
	admin := rec.To("admin@example.com")
	require.Len(t, admin, 1)
	assert.Contains(t, admin[0].Text, res.CheckoutRef)
}

func TestCheckoutStaleProductWritesNothing(t *testing.T) {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{}
	svc := New(db, rec, Options{AdminEmail: "admin@example.com"})

	ok := seedProduct(t, db, "majica", 2500, true)
	gone := seedProduct(t, db, "stara", 900, false)

	_, err := svc.Checkout(context.Background(), buyer("sr"), []Line{
		{ProductID: ok.ProductID, Quantity: 1},
		{ProductID: gone.ProductID, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrStaleCart)

	_, err = svc.Checkout(context.Background(), buyer("sr"), []Line{{ProductID: uuid.New(), Quantity: 1}})
	assert.ErrorIs(t, err, ErrStaleCart)

	assert.Zero(t, countOrders(t, db))
	assert.Empty(t, rec.Messages())
}

func TestCheckoutSurvivesMailFailure(t *testing.T) {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{Err: errors.New("smtp down")}
	svc := New(db, rec, Options{AdminEmail: "admin@example.com"})
	p := seedProduct(t, db, "nalepnica", 300, true)

	res, err := svc.PlaceSingle(context.Background(), buyer("sr"), p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), res.TotalCents)
	assert.Equal(t, 2, res.Notifications.Attempted)
	assert.Zero(t, res.Notifications.Sent)
	assert.False(t, res.Notifications.OK())
	assert.EqualValues(t, 1, countOrders(t, db))
}

func TestUpdateStatus(t *testing.T) {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{}
	svc := New(db, rec, Options{})
	p := seedProduct(t, db, "kapa", 1000, true)

	res, err := svc.PlaceSingle(context.Background(), buyer("sr"), p.ProductID)
	require.NoError(t, err)
	sentBefore := len(rec.Messages())
	id := res.OrderIDs[0]

	o, err := svc.UpdateStatus(context.Background(), id, "shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, o.OrderStatus)

	o, err = svc.UpdateStatus(context.Background(), id, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, o.OrderStatus)

	_, err = svc.UpdateStatus(context.Background(), id, "LOST")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "DECLINED")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, rec.Messages(), sentBefore)
}

func TestListCountsAndFilter(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, &mailer.Recorder{}, Options{})
	p := seedProduct(t, db, "kapa", 1000, true)

	var first *CheckoutResult
	for i := 0; i < 3; i++ {
		res, err := svc.PlaceSingle(context.Background(), buyer("sr"), p.ProductID)
		require.NoError(t, err)
		if first == nil {
			first = res
		}
	}
	_, err := svc.UpdateStatus(context.Background(), first.OrderIDs[0], "SHIPPED")
	require.NoError(t, err)

	st := model.OrderShipped
	out, err := svc.List(context.Background(), ListFilter{Status: &st, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Total)
	assert.EqualValues(t, 2, out.Counts[model.OrderPending])
	assert.EqualValues(t, 1, out.Counts[model.OrderShipped])
	assert.EqualValues(t, 0, out.Counts[model.OrderDeclined])

	out, err = svc.List(context.Background(), ListFilter{CheckoutRef: first.CheckoutRef})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Total)
}
