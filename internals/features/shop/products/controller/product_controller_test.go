package controller_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vagsociety_backend/internals/databases/dbtest"
	"vagsociety_backend/internals/features/shop/products/controller"
	"vagsociety_backend/internals/features/shop/products/route"
	"vagsociety_backend/internals/features/shop/products/service"
	"vagsociety_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*fiber.App, *storage.MemoryService) {
	blob := storage.NewMemory()
	ctrl := controller.NewProductController(service.New(dbtest.Open(t), blob, "products"))
	app := fiber.New()
	route.ProductPublicRoutes(app.Group("/api/public"), ctrl)
	route.ProductAdminRoutes(app.Group("/api/a"), ctrl)
	return app, blob
}

func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func postJSON(t *testing.T, app *fiber.App, method, url, body string) *http.Response {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProductCRUDJSON(t *testing.T) {
	app, _ := newApp(t)

	resp := postJSON(t, app, http.MethodPost, "/api/a/products", `{
		"name":"Duks VAG","description":"Topli duks sa vezom","price":"45,50",
		"imageUrl":"https://cdn.example.com/duks.webp","category":"APPAREL"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := readJSON(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 4550, p["price_cents"])
	assert.Equal(t, true, p["is_active"])
	id := p["id"].(string)

	resp = postJSON(t, app, http.MethodPut, "/api/a/products/"+id, `{
		"name":"Duks VAG","description":"Topli duks sa vezom","price":49,
		"imageUrl":"https://cdn.example.com/duks.webp","category":"APPAREL","isActive":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4900, readJSON(t, resp)["data"].(map[string]any)["price_cents"])

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/products", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, readJSON(t, resp)["data"])

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/a/products/"+id, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/a/products/"+id, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductCreateRejectsBadPrice(t *testing.T) {
	app, _ := newApp(t)
	for _, price := range []string{`"0"`, `"-5"`, `"abc"`} {
		resp := postJSON(t, app, http.MethodPost, "/api/a/products", `{
			"name":"Kapa","description":"Kapa sa logom kluba","price":`+price+`,
			"imageUrl":"/img/kapa.webp","category":"APPAREL"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, price)
		errs := readJSON(t, resp)["errors"].(map[string]any)
		assert.Contains(t, errs, "price")
	}
}

func TestProductCreateMultipartWithImage(t *testing.T) {
	app, blob := newApp(t)

	imgBuf := new(bytes.Buffer)
	require.NoError(t, png.Encode(imgBuf, image.NewRGBA(image.Rect(0, 0, 16, 16))))

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range map[string]string{
		"name":        "Nalepnica",
		"description": "Vinil nalepnica za staklo",
		"price":       "3.5",
		"category":    "stickers",
		"isActive":    "on",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "nalepnica.png")
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/a/products", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	p := readJSON(t, resp)["data"].(map[string]any)
	assert.EqualValues(t, 350, p["price_cents"])
	assert.True(t, strings.HasPrefix(p["image_url"].(string), "https://blob.test/products/"))
	assert.Len(t, blob.Keys(), 1)
}

func TestProductListBadCategory(t *testing.T) {
	app, _ := newApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/products?category=food", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
