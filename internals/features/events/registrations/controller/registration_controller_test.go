package controller_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"vagsociety_backend/internals/databases/dbtest"
	"vagsociety_backend/internals/features/events/registrations/controller"
	"vagsociety_backend/internals/features/events/registrations/model"
	"vagsociety_backend/internals/features/events/registrations/route"
	"vagsociety_backend/internals/features/events/registrations/service"
	"vagsociety_backend/internals/helpers/storage"
	"vagsociety_backend/internals/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	app  *fiber.App
	db   *gorm.DB
	mail *mailer.Recorder
}

func newEnv(t *testing.T) env {
	db := dbtest.Open(t)
	rec := &mailer.Recorder{}
	svc := service.New(db, storage.NewMemory(), rec, service.Options{Folder: "events", AdminEmail: "admin@example.com"})
	ctrl := controller.NewRegistrationController(svc, service.DefaultUploadPolicy())

	app := fiber.New(fiber.Config{BodyLimit: 50 << 20})
	route.RegistrationPublicRoutes(app.Group("/api/public"), ctrl)
	route.RegistrationAdminRoutes(app.Group("/api/a"), ctrl)
	return env{app: app, db: db, mail: rec}
}

func jpegOfSize(t *testing.T, size int) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewGray(image.Rect(0, 0, 4, 4)), nil))
	b := buf.Bytes()
	return append(b, make([]byte, size-len(b))...)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte, field string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, data := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func baseFields(lang string) map[string]string {
	return map[string]string{
		"fullName":            "Jelena Jovanović",
		"email":               "jelena@example.com",
		"phone":               "0641234567",
		"carModel":            "Passat B5",
		"country":             "Srbija",
		"city":                "Beograd",
		"arrivingWithTrailer": "on",
		"additionalInfo":      "",
		"language":            lang,
	}
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestCreateRegistrationEndToEnd(t *testing.T) {
	e := newEnv(t)
	files := map[string][]byte{
		"front.jpg": jpegOfSize(t, 500*1024),
		"back.jpg":  jpegOfSize(t, 500*1024),
		"side.jpeg": jpegOfSize(t, 500*1024),
	}
	body, ct := multipartBody(t, baseFields("sr"), files, "carImages")

	req := httptest.NewRequest(http.MethodPost, "/api/public/events/registrations", body)
	req.Header.Set("Content-Type", ct)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode(t, resp)
	data := out["data"].(map[string]any)
	reg := data["registration"].(map[string]any)
	assert.Equal(t, "PENDING", reg["status"])
	assert.Equal(t, true, reg["arriving_with_trailer"])
	assert.Len(t, reg["images"], 3)

	var stored model.RegistrationModel
	require.NoError(t, e.db.Preload("Images").First(&stored).Error)
	assert.Equal(t, model.RegistrationPending, stored.RegistrationStatus)
	assert.Len(t, stored.Images, 3)

	pending := e.mail.To("jelena@example.com")
	require.Len(t, pending, 1)
	assert.Contains(t, pending[0].Subject, "Prijava primljena")
}

func TestCreateRegistrationRejectsTwoImages(t *testing.T) {
	e := newEnv(t)
	files := map[string][]byte{
		"a.jpg": jpegOfSize(t, 1024),
		"b.jpg": jpegOfSize(t, 1024),
	}
	body, ct := multipartBody(t, baseFields("en"), files, "images")

	req := httptest.NewRequest(http.MethodPost, "/api/public/events/registrations", body)
	req.Header.Set("Content-Type", ct)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, "Please upload between 3 and 5 photos of your car.", out["message"])

	var n int64
	require.NoError(t, e.db.Model(&model.RegistrationModel{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Empty(t, e.mail.Messages())
}

func TestCreateRegistrationFieldValidationLocalized(t *testing.T) {
	e := newEnv(t)
	fields := baseFields("sr")
	fields["carModel"] = "x"
	body, ct := multipartBody(t, fields, nil, "carImages")

	req := httptest.NewRequest(http.MethodPost, "/api/public/events/registrations", body)
	req.Header.Set("Content-Type", ct)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, "Model automobila je obavezan.", out["message"])
	errs := out["errors"].(map[string]any)
	assert.Contains(t, errs, "carModel")
}

func TestApproveEndpoint(t *testing.T) {
	e := newEnv(t)
	files := map[string][]byte{
		"1.jpg": jpegOfSize(t, 2048),
		"2.jpg": jpegOfSize(t, 2048),
		"3.jpg": jpegOfSize(t, 2048),
	}
	body, ct := multipartBody(t, baseFields("en"), files, "carImages")
	req := httptest.NewRequest(http.MethodPost, "/api/public/events/registrations", body)
	req.Header.Set("Content-Type", ct)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode(t, resp)["data"].(map[string]any)["registration"].(map[string]any)["id"].(string)

	resp, err = e.app.Test(httptest.NewRequest(http.MethodPost, "/api/a/registrations/"+id+"/approve", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, out["changed"])
	assert.Equal(t, "APPROVED", out["registration"].(map[string]any)["status"])

	// idempotent
	resp, err = e.app.Test(httptest.NewRequest(http.MethodPost, "/api/a/registrations/"+id+"/approve", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["data"].(map[string]any)["changed"])

	resp, err = e.app.Test(httptest.NewRequest(http.MethodPost, "/api/a/registrations/"+id+"/decline", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	approved := 0
	for _, m := range e.mail.To("jelena@example.com") {
		if m.Subject == "Registration approved - VagSocietySerbia May meet" {
			approved++
		}
	}
	assert.Equal(t, 1, approved)

	resp, err = e.app.Test(httptest.NewRequest(http.MethodPost, "/api/a/registrations/not-a-uuid/approve", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = e.app.Test(httptest.NewRequest(http.MethodGet, "/api/a/registrations?status=APPROVED", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, resp)
	assert.Len(t, list["data"], 1)
	counts := list["includes"].(map[string]any)["counts"].(map[string]any)
	assert.EqualValues(t, 1, counts["APPROVED"])
}
