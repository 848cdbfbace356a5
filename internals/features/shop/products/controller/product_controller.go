package controller

import (
	"errors"
	"io"
	"log"
	"strings"

	"vagsociety_backend/internals/features/shop/products/dto"
	"vagsociety_backend/internals/features/shop/products/model"
	"vagsociety_backend/internals/features/shop/products/service"
	helper "vagsociety_backend/internals/helpers"
	"vagsociety_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxProductImageBytes = 8 << 20

type ProductController struct {
	Svc *service.Service
}

func NewProductController(svc *service.Service) *ProductController {
	return &ProductController{Svc: svc}
}

// =========================
// GET /api/public/products?category=
// =========================
func (ctrl *ProductController) ListPublic(c *fiber.Ctx) error {
	var cat *model.ProductCategory
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		parsed, err := model.ParseProductCategory(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Kategori tidak valid")
		}
		cat = &parsed
	}
	rows, err := ctrl.Svc.ListActive(c.UserContext(), cat)
	if err != nil {
		log.Printf("[ERROR] list produk publik: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil produk")
	}
	return helper.JsonOK(c, "ok", dto.ToProductDTOs(rows))
}

// =========================
// GET /api/a/products
// =========================
func (ctrl *ProductController) ListAdmin(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctrl.Svc.ListAll(c.UserContext(), paging.Offset, paging.Limit)
	if err != nil {
		log.Printf("[ERROR] list produk admin: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil produk")
	}
	return helper.JsonList(c, "ok", dto.ToProductDTOs(rows), helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *ProductController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID produk tidak valid")
	}
	p, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return mapError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToProductDTO(*p))
}

// =========================
// POST /api/a/products
// =========================
func (ctrl *ProductController) Create(c *fiber.Ctx) error {
	in, err := ctrl.readInput(c)
	if err != nil {
		return err
	}
	if in == nil {
		return nil
	}
	p, err := ctrl.Svc.Create(c.UserContext(), *in)
	if err != nil {
		return mapError(c, err)
	}
	return helper.JsonCreated(c, "Produk dibuat", dto.ToProductDTO(*p))
}

// =========================
// PUT /api/a/products/:id
// =========================
func (ctrl *ProductController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID produk tidak valid")
	}
	in, err := ctrl.readInput(c)
	if err != nil {
		return err
	}
	if in == nil {
		return nil
	}
	p, err := ctrl.Svc.Update(c.UserContext(), id, *in)
	if err != nil {
		return mapError(c, err)
	}
	return helper.JsonUpdated(c, "Produk diperbarui", dto.ToProductDTO(*p))
}

// =========================
// DELETE /api/a/products/:id
// =========================
func (ctrl *ProductController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID produk tidak valid")
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return helper.JsonDeleted(c, "Produk dihapus", fiber.Map{"id": id})
}

// readInput menerima JSON atau multipart (opsional file "image" → WebP).
// Return (nil, nil) kalau response error sudah ditulis.
func (ctrl *ProductController) readInput(c *fiber.Ctx) (*dto.ProductInput, error) {
	var (
		req      dto.ProductRequest
		imgName  string
		imgBytes []byte
	)

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		req = dto.ProductRequestFromForm(func(k string) string { return c.FormValue(k) })
		if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
			if fh.Size > maxProductImageBytes {
				return nil, helper.JsonValidationError(c, "Slika je prevelika", map[string][]string{"image": {"Slika je prevelika (max 8 MB)"}})
			}
			f, err := fh.Open()
			if err != nil {
				return nil, helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file gambar")
			}
			imgBytes, err = io.ReadAll(io.LimitReader(f, maxProductImageBytes+1))
			f.Close()
			if err != nil {
				return nil, helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file gambar")
			}
			imgName = fh.Filename
			if strings.TrimSpace(req.ImageURL) == "" {
				// diisi URL hasil upload setelah validasi lolos
				req.ImageURL = "/pending-upload"
			}
		}
	} else if err := c.BodyParser(&req); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	in, verrs := req.Validate()
	if verrs != nil {
		return nil, helper.JsonValidationError(c, verrs.First, verrs.Fields)
	}

	if imgBytes != nil {
		url, err := ctrl.Svc.UploadImage(c.UserContext(), imgName, imgBytes)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedImage) || errors.Is(err, storage.ErrImageDecode) {
				return nil, helper.JsonValidationError(c, "Format slike nije podržan", map[string][]string{"image": {"Format slike nije podržan (JPG, PNG, WEBP)"}})
			}
			return nil, helper.JsonError(c, fiber.StatusBadGateway, "Upload gambar gagal")
		}
		in.ImageURL = url
	}
	return in, nil
}

func mapError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Produk tidak ditemukan")
	}
	log.Printf("[ERROR] produk: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
