package helper

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func textPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// SanitizeText membuang semua markup dari input bebas user dan merapikan spasi.
// Entity hasil sanitasi dikembalikan ke teks biasa; escaping dilakukan saat render.
func SanitizeText(s string) string {
	clean := textPolicy().Sanitize(s)
	clean = html.UnescapeString(clean)
	return strings.TrimSpace(clean)
}
