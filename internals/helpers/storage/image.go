package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedImage = errors.New("format gambar tidak didukung")
	ErrImageDecode      = errors.New("gambar tidak bisa dibaca")
)

// Foto registrasi: jpeg/png/heic/heif.
var photoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/heic": true,
	"image/heif": true,
}

var photoExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heic",
	".heif": "image/heif",
}

// SniffPhoto menentukan MIME dari isi file. Isi yang dikenali harus jpeg/png/heic/heif;
// kalau isi tidak dikenali sama sekali (octet-stream) extension yang menentukan.
func SniffPhoto(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		base := strings.ToLower(m.String())
		if i := strings.IndexByte(base, ';'); i >= 0 {
			base = base[:i]
		}
		if photoTypes[base] {
			return base, nil
		}
	}
	if mt.Is("application/octet-stream") {
		if ct, ok := photoExts[ext]; ok {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedImage, mt.String(), ext)
}

// PhotoExtAllowed: cek extension saja (heic/heif dari iPhone kadang lolos sniff sebagai ftyp generic).
func PhotoExtAllowed(filename string) bool {
	_, ok := photoExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

type CompressOptions struct {
	MaxSide     int // default 1600
	JPEGQuality int // default 78
}

func (o CompressOptions) withDefaults() CompressOptions {
	if o.MaxSide <= 0 {
		o.MaxSide = 1600
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = 78
	}
	return o
}

// CompressPhoto re-encode jpeg/png: downscale ke MaxSide lalu encode ulang.
// HEIC/HEIF dan gambar yang gagal di-decode dikembalikan apa adanya.
// Hasil dipakai hanya kalau lebih kecil dari aslinya (return changed=false kalau tidak).
func CompressPhoto(data []byte, contentType string, opt CompressOptions) (out []byte, changed bool) {
	opt = opt.withDefaults()
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, false
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, false
	}
	img = fitWithin(img, opt.MaxSide, opt.MaxSide)

	buf := new(bytes.Buffer)
	err = imaging.Encode(buf, img, format,
		imaging.JPEGQuality(opt.JPEGQuality),
		imaging.PNGCompressionLevel(png.BestCompression),
	)
	if err != nil || buf.Len() == 0 || buf.Len() >= len(data) {
		return data, false
	}
	return buf.Bytes(), true
}

func fitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if (maxW > 0 && b.Dx() > maxW) || (maxH > 0 && b.Dy() > maxH) {
		return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}
	return img
}

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
}

// ConvertToWebP: decode (jpeg/png/gif/webp) → resize kalau perlu → encode webp lossy.
func ConvertToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	var (
		img image.Image
		err error
	)
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/webp"):
		img, err = webp.Decode(bytes.NewReader(data))
	case mt.Is("image/jpeg"), mt.Is("image/png"), mt.Is("image/gif"):
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	img = fitWithin(img, opt.MaxW, opt.MaxH)
	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WebPFilename mengganti extension jadi .webp.
func WebPFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "image"
	}
	return base + ".webp"
}
