package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/deskboard/internal/config"
)

var (
	ErrInvalidKey     = errors.New("invalid storage key")
	ErrObjectNotFound = errors.New("object not found")
	ErrShortWrite     = errors.New("object size does not match declared size")
)

// Storage is a flat object store addressed by slash separated keys.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Put writes exactly size bytes from r under key. Fewer or more bytes
	// is reported as ErrShortWrite and nothing usable is left behind.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get opens the object for reading. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Key returns the backend key for a user's object name.
	Key(userID, name string) string

	// URL returns the address clients use to fetch the object.
	URL(key string) string

	// Name identifies the backend ("s3", "minio", "local").
	Name() string
}

// Presigner is implemented by remote backends that can hand out
// time limited download URLs.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// New picks the backend once at startup: a configured remote credential
// selects remote storage, otherwise files land on the local filesystem.
func New(c *config.Config) (Storage, error) {
	if !c.HasRemoteStorage() {
		slog.Info("initializing local storage", "path", c.LocalStoragePath)
		return NewLocalStorage(c.LocalStoragePath)
	}

	switch c.S3Provider {
	case "minio":
		slog.Info("initializing minio storage",
			"bucket", c.S3Bucket,
			"endpoint", c.S3Endpoint,
		)
		return NewMinioStorage(MinioConfig{
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			UseSSL:    c.S3UseSSL,
			PublicURL: c.S3PublicURL,
		})
	case "s3", "":
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			PublicURL: c.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("unknown S3_PROVIDER %q", c.S3Provider)
	}
}

var mimeExtensions = map[string]string{
	"image/jpeg":       "jpg",
	"image/jpg":        "jpg",
	"image/png":        "png",
	"image/gif":        "gif",
	"image/webp":       "webp",
	"application/pdf":  "pdf",
	"text/plain":       "txt",
	"text/csv":         "csv",
	"application/json": "json",
}

// ObjectName builds a collision resistant object name of the form
// <unix-millis>-<suffix>.<ext> for an uploaded file.
func ObjectName(originalName, mimeType string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), suffix, extension(originalName, mimeType))
}

// extension prefers the client's file extension, then the MIME type, then "bin".
func extension(originalName, mimeType string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext != "" && len(ext) <= 10 && isAlnum(ext) {
		return ext
	}
	if ext, ok := mimeExtensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return "bin"
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// readExact reads exactly size bytes from r.
func readExact(r io.Reader, size int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, size+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != size {
		return nil, ErrShortWrite
	}
	return data, nil
}
