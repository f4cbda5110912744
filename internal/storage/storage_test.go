package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/deskboard/internal/config"
)

func TestObjectNameFormat(t *testing.T) {
	name := ObjectName("Holiday Photo.PNG", "image/png")
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-[0-9a-f]{6}\.png$`), name)
}

func TestObjectNameIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		name := ObjectName("a.txt", "text/plain")
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		original string
		mimeType string
		want     string
	}{
		{"report.PDF", "application/pdf", "pdf"},
		{"notes", "text/plain", "txt"},
		{"data", "application/json", "json"},
		{"photo.jp g", "image/jpeg", "jpg"},
		{"archive", "application/octet-stream", "bin"},
		{"", "", "bin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extension(tt.original, tt.mimeType), tt.original)
	}
}

func TestNewSelectsLocalWithoutCredential(t *testing.T) {
	cfg := &config.Config{LocalStoragePath: t.TempDir(), S3Provider: "s3"}

	s, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "local", s.Name())
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{S3AccessKey: "key", S3SecretKey: "secret", S3Provider: "ftp"}

	_, err := New(cfg)
	assert.Error(t, err)
}
