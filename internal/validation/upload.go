package validation

import (
	"errors"
	"mime"
	"strings"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize int64 = 5 << 20

var (
	ErrFileTooLarge    = errors.New("file too large: maximum size is 5 MB")
	ErrUnsupportedType = errors.New("unsupported file type: allowed are JPEG, PNG, GIF, WebP, PDF, TXT, CSV and JSON")
)

// AllowedTypes is the upload MIME allowlist. image/jpg is not a registered
// type but browsers and clients still send it.
var AllowedTypes = map[string]bool{
	"image/jpeg":       true,
	"image/jpg":        true,
	"image/png":        true,
	"image/gif":        true,
	"image/webp":       true,
	"application/pdf":  true,
	"text/plain":       true,
	"text/csv":         true,
	"application/json": true,
}

// NormalizeMimeType strips parameters and lower-cases a Content-Type value.
func NormalizeMimeType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType, _, _ = strings.Cut(mimeType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// ValidateUpload checks the declared size and MIME type of an upload before
// any bytes are stored. Size is checked first. The type is trusted as sent.
func ValidateUpload(size int64, mimeType string) error {
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !AllowedTypes[NormalizeMimeType(mimeType)] {
		return ErrUnsupportedType
	}
	return nil
}
