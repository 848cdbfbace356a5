package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator mengembalikan instance bersama; nama field diambil dari tag json.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
		// URL gambar boleh path lokal ("/uploads/..") atau absolut http(s)
		_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "http")
		})
		validate = v
	})
	return validate
}

// FieldMessages: key "field" atau "field.tag" → pesan untuk user.
type FieldMessages map[string]string

func (m FieldMessages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fmt.Sprintf("%s: %s", field, tag)
}

// ValidationErrors hasil validasi struct. First = pesan error pertama yang ditemukan.
type ValidationErrors struct {
	Fields map[string][]string
	First  string
}

func (v *ValidationErrors) Error() string {
	return v.First
}

func (v *ValidationErrors) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string][]string{}
	}
	v.Fields[field] = append(v.Fields[field], message)
	if v.First == "" {
		v.First = message
	}
}

func (v *ValidationErrors) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// ValidateStruct menjalankan validator dan menerjemahkan error ke pesan per field.
// Return nil kalau valid.
func ValidateStruct(s any, msgs FieldMessages) *ValidationErrors {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	out := &ValidationErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out.Add("_", err.Error())
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out.Add(field, msgs.lookup(field, fe.Tag()))
	}
	return out
}
