package dto

import (
	"strings"

	helper "vagsociety_backend/internals/helpers"
)

// Lang: hanya sr / en, selain itu sr.
func Lang(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "en") {
		return "en"
	}
	return "sr"
}

var fieldMessages = map[string]helper.FieldMessages{
	"sr": {
		"fullName":        "Ime i prezime je obavezno",
		"email":           "Unesite ispravan email",
		"phone":           "Telefon je obavezan",
		"shippingAddress": "Adresa za isporuku je obavezna",
	},
	"en": {
		"fullName":        "Full name is required",
		"email":           "Enter a valid email",
		"phone":           "Phone is required",
		"shippingAddress": "Shipping address is required",
	},
}

func FieldMessages(lang string) helper.FieldMessages {
	return fieldMessages[Lang(lang)]
}

type MessageCode string

const (
	MsgCartEmpty          MessageCode = "cart_empty"
	MsgCartInvalid        MessageCode = "cart_invalid"
	MsgStaleCart          MessageCode = "stale_cart"
	MsgProductUnavailable MessageCode = "product_unavailable"
	MsgOrderReceived      MessageCode = "order_received"
	MsgOrderFailed        MessageCode = "order_failed"
)

var messages = map[string]map[MessageCode]string{
	"sr": {
		MsgCartEmpty:          "Korpa je prazna",
		MsgCartInvalid:        "Podaci o korpi nisu ispravni.",
		MsgStaleCart:          "Neki proizvodi više nisu dostupni. Osvežite stranicu.",
		MsgProductUnavailable: "Izabrani proizvod nije dostupan.",
		MsgOrderReceived:      "Narudžbina primljena! Proverite email.",
		MsgOrderFailed:        "Ne možemo da obradimo narudžbinu.",
	},
	"en": {
		MsgCartEmpty:          "Your cart is empty",
		MsgCartInvalid:        "Cart data is invalid.",
		MsgStaleCart:          "Some products are no longer available. Refresh the page and try again.",
		MsgProductUnavailable: "The selected product is not available.",
		MsgOrderReceived:      "Order received! Check your email.",
		MsgOrderFailed:        "We could not process your order.",
	},
}

func Message(lang string, code MessageCode) string {
	return messages[Lang(lang)][code]
}
