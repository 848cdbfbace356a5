package dto

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"vagsociety_backend/internals/features/shop/products/model"
	helper "vagsociety_backend/internals/helpers"

	"github.com/google/uuid"
)

var ErrInvalidPrice = errors.New("cena mora biti pozitivan broj")

// ParsePriceToCents: "12,50" / "12.50" / "12" → 1250. Tolak kosong, non-numerik,
// NaN/Inf, ≤0, dan hasil pembulatan ≤0.
func ParsePriceToCents(raw string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, ErrInvalidPrice
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(v * 100)
	if cents <= 0 || cents > math.MaxInt32 {
		return 0, ErrInvalidPrice
	}
	return int64(cents), nil
}

// FlexString menerima angka atau string di JSON ("price": 12.5 / "12,50").
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

// FlexBool menerima true/false atau string checkbox ("on", "true", "1").
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	*f = FlexBool(ParseCheckbox(s))
	return nil
}

func ParseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

/* =========================================================
   REQUEST
========================================================= */

type ProductRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=160"`
	Description string     `json:"description" validate:"required,min=10"`
	Price       FlexString `json:"price" validate:"required"`
	ImageURL    string     `json:"imageUrl" validate:"required,imageurl"`
	Category    string     `json:"category" validate:"required"`
	IsActive    *FlexBool  `json:"isActive"`
}

func ProductRequestFromForm(get func(string) string) ProductRequest {
	r := ProductRequest{
		Name:        get("name"),
		Description: get("description"),
		Price:       FlexString(get("price")),
		ImageURL:    get("imageUrl"),
		Category:    get("category"),
	}
	// checkbox tidak terkirim = false
	active := FlexBool(ParseCheckbox(get("isActive")))
	r.IsActive = &active
	return r
}

var productMessages = helper.FieldMessages{
	"name":              "Naziv je obavezan",
	"description":       "Opis je obavezan (najmanje 10 karaktera)",
	"price":             "Cena mora biti pozitivna",
	"imageUrl.required": "URL slike je obavezan",
	"imageUrl":          "URL slike mora biti validan",
	"category":          "Kategorija je obavezna",
}

// ProductInput hasil validasi yang siap disimpan.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Category    model.ProductCategory
	IsActive    bool
}

// Validate normalisasi + validasi. ImageURL boleh diisi belakangan oleh upload gambar.
func (r ProductRequest) Validate() (*ProductInput, *helper.ValidationErrors) {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Price = FlexString(strings.TrimSpace(string(r.Price)))

	errs := helper.ValidateStruct(r, productMessages)
	if errs == nil {
		errs = &helper.ValidationErrors{}
	}

	cents, err := ParsePriceToCents(string(r.Price))
	if err != nil && errs.Fields["price"] == nil {
		errs.Add("price", productMessages["price"])
	}
	cat, err := model.ParseProductCategory(r.Category)
	if err != nil && errs.Fields["category"] == nil {
		errs.Add("category", "Kategorija mora biti APPAREL, ACCESSORIES ili STICKERS")
	}
	if !errs.Empty() {
		return nil, errs
	}

	active := true
	if r.IsActive != nil {
		active = bool(*r.IsActive)
	}
	return &ProductInput{
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  cents,
		ImageURL:    r.ImageURL,
		Category:    cat,
		IsActive:    active,
	}, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	PriceLabel  string    `json:"price_label"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProductDTO(m model.ProductModel) ProductDTO {
	return ProductDTO{
		ID:          m.ProductID,
		Name:        m.ProductName,
		Description: m.ProductDescription,
		PriceCents:  m.ProductPriceCents,
		PriceLabel:  helper.FormatPrice(m.ProductPriceCents),
		ImageURL:    m.ProductImageURL,
		Category:    string(m.ProductCategory),
		IsActive:    m.ProductIsActive,
		CreatedAt:   m.ProductCreatedAt,
		UpdatedAt:   m.ProductUpdatedAt,
	}
}

func ToProductDTOs(rows []model.ProductModel) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToProductDTO(r))
	}
	return out
}
