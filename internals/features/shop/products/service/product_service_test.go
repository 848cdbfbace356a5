package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"vagsociety_backend/internals/databases/dbtest"
	orderModel "vagsociety_backend/internals/features/shop/orders/model"
	"vagsociety_backend/internals/features/shop/products/dto"
	"vagsociety_backend/internals/features/shop/products/model"
	"vagsociety_backend/internals/helpers/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(name string, cents int64, cat model.ProductCategory, active bool) dto.ProductInput {
	return dto.ProductInput{
		Name:        name,
		Description: "Opis proizvoda za test",
		PriceCents:  cents,
		ImageURL:    "/img/" + name + ".webp",
		Category:    cat,
		IsActive:    active,
	}
}

func TestCreateListActive(t *testing.T) {
	ctx := context.Background()
	svc := New(dbtest.Open(t), storage.NewMemory(), "")

	_, err := svc.Create(ctx, input("majica", 2500, model.CategoryApparel, true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("nalepnica", 300, model.CategoryStickers, true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("stara", 100, model.CategoryApparel, false))
	require.NoError(t, err)

	rows, err := svc.ListActive(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	cat := model.CategoryApparel
	rows, err = svc.ListActive(ctx, &cat)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "majica", rows[0].ProductName)

	all, total, err := svc.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}

func TestUpdateCanDeactivate(t *testing.T) {
	ctx := context.Background()
	svc := New(dbtest.Open(t), storage.NewMemory(), "")

	p, err := svc.Create(ctx, input("kapa", 1500, model.CategoryApparel, true))
	require.NoError(t, err)

	in := input("kapa nova", 1750, model.CategoryAccessories, false)
	got, err := svc.Update(ctx, p.ProductID, in)
	require.NoError(t, err)
	assert.Equal(t, "kapa nova", got.ProductName)
	assert.Equal(t, int64(1750), got.ProductPriceCents)
	assert.False(t, got.ProductIsActive)

	_, err = svc.Update(ctx, uuid.New(), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteKeepsOrdersWithSnapshot(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db, storage.NewMemory(), "")

	p, err := svc.Create(ctx, input("privezak", 500, model.CategoryAccessories, true))
	require.NoError(t, err)

	pid := p.ProductID
	o := orderModel.OrderModel{
		OrderCheckoutRef:         "ABCD1234",
		OrderProductID:           &pid,
		OrderProductNameSnapshot: p.ProductName,
		OrderUnitPriceCents:      p.ProductPriceCents,
		OrderQuantity:            2,
		OrderFullName:            "Marko Marković",
		OrderEmail:               "marko@example.com",
		OrderPhone:               "0601234567",
		OrderShippingAddress:     "Bulevar 1, Novi Sad",
	}
	require.NoError(t, db.Create(&o).Error)

	require.NoError(t, svc.Delete(ctx, pid))

	_, err = svc.Get(ctx, pid)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored orderModel.OrderModel
	require.NoError(t, db.First(&stored, "order_id = ?", o.OrderID).Error)
	assert.Nil(t, stored.OrderProductID)
	assert.Equal(t, "privezak", stored.OrderProductNameSnapshot)
	assert.Equal(t, int64(1000), stored.LineTotalCents())

	assert.ErrorIs(t, svc.Delete(ctx, pid), ErrNotFound)
}

func TestUploadImageStoresWebP(t *testing.T) {
	blob := storage.NewMemory()
	svc := New(dbtest.Open(t), blob, "products")

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))

	url, err := svc.UploadImage(context.Background(), "Logo Majica.png", buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, url, "products/")
	assert.Contains(t, url, ".webp")
	require.Len(t, blob.Keys(), 1)

	_, err = svc.UploadImage(context.Background(), "x.png", []byte("bukan gambar"))
	assert.Error(t, err)
}
