package service

import (
	"fmt"
	"io"
	"mime/multipart"

	"vagsociety_backend/internals/features/events/registrations/dto"
	"vagsociety_backend/internals/helpers/storage"
)

// UploadPolicy aturan penerimaan foto registrasi.
type UploadPolicy struct {
	MinFiles      int
	MaxFiles      int
	MaxFileBytes  int64
	MaxTotalBytes int64
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{MinFiles: 3, MaxFiles: 5, MaxFileBytes: 10 << 20, MaxTotalBytes: 40 << 20}
}

// PolicyError pelanggaran aturan upload; Code salah satu dto.Upload*.
type PolicyError struct {
	Code     string
	Filename string
	Count    int
	Size     int64
}

func (e *PolicyError) Error() string {
	switch e.Code {
	case dto.UploadCount:
		return fmt.Sprintf("jumlah foto tidak valid: %d", e.Count)
	case dto.UploadType:
		return fmt.Sprintf("tipe file tidak didukung: %s", e.Filename)
	case dto.UploadFileSize:
		return fmt.Sprintf("file terlalu besar: %s (%d bytes)", e.Filename, e.Size)
	case dto.UploadTotalSize:
		return fmt.Sprintf("total upload terlalu besar: %d bytes", e.Size)
	}
	return "upload ditolak: " + e.Code
}

// Photo foto yang sudah lolos aturan, isi sudah dibaca & di-sniff.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Candidate bentuk netral dari file upload (multipart atau test).
type Candidate struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

func CandidatesFromHeaders(headers ...[]*multipart.FileHeader) []Candidate {
	var out []Candidate
	for _, group := range headers {
		for _, fh := range group {
			fh := fh
			out = append(out, Candidate{
				Filename: fh.Filename,
				Size:     fh.Size,
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
	}
	return out
}

// Apply urutan cek: buang file 0 byte → jumlah → ukuran per file → total → tipe (sniff isi + extension).
// Ukuran dicek dari header sebelum isi dibaca, lalu dicek ulang dari isi sebenarnya.
func (p UploadPolicy) Apply(files []Candidate) ([]Photo, error) {
	nonEmpty := make([]Candidate, 0, len(files))
	for _, f := range files {
		if f.Size > 0 {
			nonEmpty = append(nonEmpty, f)
		}
	}
	if len(nonEmpty) < p.MinFiles || len(nonEmpty) > p.MaxFiles {
		return nil, &PolicyError{Code: dto.UploadCount, Count: len(nonEmpty)}
	}

	var total int64
	for _, f := range nonEmpty {
		if f.Size > p.MaxFileBytes {
			return nil, &PolicyError{Code: dto.UploadFileSize, Filename: f.Filename, Size: f.Size}
		}
		total += f.Size
	}
	if total > p.MaxTotalBytes {
		return nil, &PolicyError{Code: dto.UploadTotalSize, Size: total}
	}

	photos := make([]Photo, 0, len(nonEmpty))
	var readTotal int64
	for _, f := range nonEmpty {
		data, err := readLimited(f, p.MaxFileBytes)
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > p.MaxFileBytes {
			return nil, &PolicyError{Code: dto.UploadFileSize, Filename: f.Filename, Size: int64(len(data))}
		}
		readTotal += int64(len(data))
		if readTotal > p.MaxTotalBytes {
			return nil, &PolicyError{Code: dto.UploadTotalSize, Size: readTotal}
		}
		if !storage.PhotoExtAllowed(f.Filename) {
			return nil, &PolicyError{Code: dto.UploadType, Filename: f.Filename}
		}
		ct, err := storage.SniffPhoto(data, f.Filename)
		if err != nil {
			return nil, &PolicyError{Code: dto.UploadType, Filename: f.Filename}
		}
		photos = append(photos, Photo{Filename: f.Filename, ContentType: ct, Data: data})
	}
	return photos, nil
}

func readLimited(f Candidate, max int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("buka file %s: %w", f.Filename, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, max+1))
	if err != nil {
		return nil, fmt.Errorf("baca file %s: %w", f.Filename, err)
	}
	return data, nil
}
