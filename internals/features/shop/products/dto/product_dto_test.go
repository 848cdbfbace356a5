package dto

import (
	"encoding/json"
	"testing"

	"vagsociety_backend/internals/features/shop/products/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	ok := map[string]int64{
		"12,50":  1250,
		"12.50":  1250,
		"12":     1200,
		" 0.01 ": 1,
		"19.999": 2000,
	}
	for in, want := range ok {
		got, err := ParsePriceToCents(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "0", "-5", "abc", "0.001", "NaN", "Inf", "1e20"} {
		_, err := ParsePriceToCents(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

func TestProductRequestJSONAcceptsNumberOrString(t *testing.T) {
	var r ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name":"Majica VAG","description":"Pamučna majica sa logom","price":24.9,
		"imageUrl":"/img/shirt.webp","category":"apparel","isActive":"on"}`), &r))

	in, errs := r.Validate()
	require.Nil(t, errs)
	assert.Equal(t, int64(2490), in.PriceCents)
	assert.Equal(t, model.CategoryApparel, in.Category)
	assert.True(t, in.IsActive)

	r.Price = "24,90"
	in, errs = r.Validate()
	require.Nil(t, errs)
	assert.Equal(t, int64(2490), in.PriceCents)
}

func TestProductRequestValidate(t *testing.T) {
	r := ProductRequest{
		Name:        "X",
		Description: "kratko",
		Price:       "0",
		ImageURL:    "ftp://nope",
		Category:    "FOOD",
	}
	_, errs := r.Validate()
	require.NotNil(t, errs)
	for _, f := range []string{"name", "description", "price", "imageUrl", "category"} {
		assert.Contains(t, errs.Fields, f)
	}
	assert.Equal(t, "URL slike mora biti validan", errs.Fields["imageUrl"][0])
}

func TestProductRequestFromFormCheckbox(t *testing.T) {
	form := map[string]string{
		"name":        "Privezak",
		"description": "Metalni privezak za ključeve",
		"price":       "5,00",
		"imageUrl":    "https://cdn.example.com/p.webp",
		"category":    "ACCESSORIES",
	}
	r := ProductRequestFromForm(func(k string) string { return form[k] })
	in, errs := r.Validate()
	require.Nil(t, errs)
	assert.False(t, in.IsActive)

	// JSON tanpa isActive → default aktif
	var j ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Privezak","description":"Metalni privezak za ključeve","price":"5","imageUrl":"/p.webp","category":"STICKERS"}`), &j))
	in, errs = j.Validate()
	require.Nil(t, errs)
	assert.True(t, in.IsActive)
}

func TestToProductDTOPriceLabel(t *testing.T) {
	d := ToProductDTO(model.ProductModel{ProductName: "Kapa", ProductPriceCents: 123450, ProductCategory: model.CategoryApparel})
	assert.Equal(t, "1.234,50 €", d.PriceLabel)
	assert.Equal(t, "APPAREL", d.Category)
}
