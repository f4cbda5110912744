package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
	"github.com/templui/deskboard/internal/storage"
)

// memStorage is an in-memory storage.Storage that records calls and can be
// told to fail.
type memStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      []string
	deletes   []string
	putErr    error
	deleteErr error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Put(_ context.Context, key string, r io.Reader, size int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts = append(s.puts, key)
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		s.objects[key] = data
		return storage.ErrShortWrite
	}
	s.objects[key] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, key)
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *memStorage) Key(userID, name string) string { return userID + "/" + name }
func (s *memStorage) URL(key string) string          { return "/uploads/" + key }
func (s *memStorage) Name() string                   { return "memory" }

func (s *memStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// presigningStorage adds presigned URLs to memStorage.
type presigningStorage struct {
	*memStorage
}

func (s presigningStorage) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signed=1", nil
}

// memFileRepo is a repository.FileRepository over a slice.
type memFileRepo struct {
	mu        sync.Mutex
	files     []*model.File
	createErr error
}

func (r *memFileRepo) Create(file *model.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.files = append(r.files, file)
	return nil
}

func (r *memFileRepo) ByIDForUser(id, userID string) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id && f.UserID == userID {
			return f, nil
		}
	}
	return nil, repository.ErrFileNotFound
}

func (r *memFileRepo) UserFiles(userID string) ([]*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	files := []*model.File{}
	for i := len(r.files) - 1; i >= 0; i-- {
		if r.files[i].UserID == userID {
			files = append(files, r.files[i])
		}
	}
	return files, nil
}

func (r *memFileRepo) Recent(userID string, limit int) ([]*model.File, error) {
	files, _ := r.UserFiles(userID)
	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (r *memFileRepo) Stats(userID string) (*repository.FileStats, error) {
	files, _ := r.UserFiles(userID)
	stats := &repository.FileStats{}
	for _, f := range files {
		stats.Count++
		stats.TotalSize += f.Size
	}
	return stats, nil
}

func (r *memFileRepo) Delete(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.files {
		if f.ID == id && f.UserID == userID {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return repository.ErrFileNotFound
}

var errBoom = errors.New("boom")
