package products

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vagsociety_backend/internals/databases/dbtest"
	"vagsociety_backend/internals/features/shop/products/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProductsFromJSONSkipsExistingAndInvalid(t *testing.T) {
	db := dbtest.Open(t)
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Majica","description":"Pamučna majica sa logom","price":"24,90","imageUrl":"/img/majica.webp","category":"APPAREL"},
		{"name":"Nalepnica","description":"Vinil nalepnica 30 cm","price":"0","imageUrl":"/img/n.webp","category":"STICKERS"},
		{"name":"Privezak","description":"Metalni privezak sa logom","price":"7.90","imageUrl":"/img/p.webp","category":"ACCESSORIES","isActive":false}
	]`), 0o644))

	n, err := SeedProductsFromJSON(context.Background(), db, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var key model.ProductModel
	require.NoError(t, db.First(&key, "product_name = ?", "Privezak").Error)
	assert.EqualValues(t, 790, key.ProductPriceCents)
	assert.False(t, key.ProductIsActive)

	n, err = SeedProductsFromJSON(context.Background(), db, path)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedProductsBundledFileIsValid(t *testing.T) {
	db := dbtest.Open(t)
	n, err := SeedProductsFromJSON(context.Background(), db, "data_products.json")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
