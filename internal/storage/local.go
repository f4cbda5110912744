package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps objects as files under a root directory, one
// subdirectory per user.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	err = os.MkdirAll(abs, 0755)
	if err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

// path resolves key below the root and rejects anything that escapes it.
func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "\x00") {
		return "", ErrInvalidKey
	}
	resolved, err := filepath.Abs(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return resolved, nil
}

// Put writes to a temp file in the target directory and renames it into
// place, so readers never observe a partial object.
func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	objectPath, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(objectPath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".upload-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	written, err := io.Copy(tempFile, io.LimitReader(&ctxReader{ctx: ctx, r: r}, size+1))
	if err == nil && written != size {
		err = ErrShortWrite
	}
	if err == nil {
		err = tempFile.Sync()
	}
	closeErr := tempFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	err = os.Rename(tempPath, objectPath)
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename object: %w", err)
	}

	return nil
}

func (s *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	objectPath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(objectPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	objectPath, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(objectPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) Key(userID, name string) string {
	return userID + "/" + name
}

// URL points at the authenticated /uploads route.
func (s *LocalStorage) URL(key string) string {
	return "/uploads/" + key
}

func (s *LocalStorage) Name() string {
	return "local"
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	err := c.ctx.Err()
	if err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
