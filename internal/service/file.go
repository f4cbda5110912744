package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
	"github.com/templui/deskboard/internal/storage"
	"github.com/templui/deskboard/internal/validation"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrStorageFailed = errors.New("storage failed")
	ErrPersistFailed = errors.New("failed to save file record")
)

const (
	putTimeout    = 30 * time.Second
	deleteTimeout = 10 * time.Second
)

// Upload is a file as received from the client. Size and MimeType are the
// declared values; Body must yield exactly Size bytes.
type Upload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// FileContent is either a readable object or a URL the client is sent to.
type FileContent struct {
	File        *model.File
	Body        io.ReadCloser
	RedirectURL string
}

type FileService struct {
	fileRepo   repository.FileRepository
	storage    storage.Storage
	presignTTL time.Duration
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage, presignTTL time.Duration) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		storage:    storage,
		presignTTL: presignTTL,
	}
}

// Upload validates, stores and records a file. When the record cannot be
// saved the stored object is deleted again; the outcome of that delete is
// logged and never changes the returned error.
func (s *FileService) Upload(ctx context.Context, userID string, in Upload) (*model.File, error) {
	mimeType := validation.NormalizeMimeType(in.MimeType)

	err := validation.ValidateUpload(in.Size, mimeType)
	if err != nil {
		return nil, invalidInput(err)
	}

	name := storage.ObjectName(in.OriginalName, mimeType)
	key := s.storage.Key(userID, name)

	putCtx, cancel := context.WithTimeout(ctx, putTimeout)
	err = s.storage.Put(putCtx, key, in.Body, in.Size, mimeType)
	cancel()
	if err != nil {
		slog.Error("failed to store object", "error", err, "user_id", userID, "storage_key", key, "backend", s.storage.Name())
		if errors.Is(err, storage.ErrShortWrite) {
			s.deleteObject(ctx, key, "partial object delete")
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	file := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		OriginalName: in.OriginalName,
		Size:         in.Size,
		Type:         mimeType,
		URL:          s.storage.URL(key),
		StorageKey:   key,
		UploadedAt:   time.Now().UTC(),
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		slog.Error("failed to create file record", "error", err, "user_id", userID, "storage_key", key)
		s.deleteObject(ctx, key, "compensating delete")
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	slog.Info("file uploaded", "user_id", userID, "file_id", file.ID, "size", file.Size, "type", file.Type)
	return file, nil
}

// deleteObject removes an object that has no record pointing at it.
// Failure leaves an orphan, so it is logged at error level.
func (s *FileService) deleteObject(ctx context.Context, key, action string) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	defer cancel()

	err := s.storage.Delete(delCtx, key)
	if err != nil {
		slog.Error(action+" failed", "error", err, "storage_key", key)
		return
	}
	slog.Info(action+" succeeded", "storage_key", key)
}

// Files returns the user's files, newest first.
func (s *FileService) Files(userID string) ([]*model.File, error) {
	files, err := s.fileRepo.UserFiles(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

func (s *FileService) File(userID, fileID string) (*model.File, error) {
	file, err := s.fileRepo.ByIDForUser(fileID, userID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// Delete removes a user's file. The object delete is best effort: on failure
// the key is logged as orphaned and the record is removed anyway.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.File(userID, fileID)
	if err != nil {
		return err
	}

	delCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
	delErr := s.storage.Delete(delCtx, file.StorageKey)
	cancel()
	if delErr != nil {
		slog.Warn("failed to delete object from storage, object orphaned", "error", delErr, "file_id", file.ID, "storage_key", file.StorageKey)
	}

	err = s.fileRepo.Delete(file.ID, userID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	slog.Info("file deleted", "user_id", userID, "file_id", file.ID)
	return nil
}

// Content opens a user's file. Remote backends that can presign hand back a
// redirect URL instead of a stream.
func (s *FileService) Content(ctx context.Context, userID, fileID string) (*FileContent, error) {
	file, err := s.File(userID, fileID)
	if err != nil {
		return nil, err
	}

	presigner, ok := s.storage.(storage.Presigner)
	if ok {
		url, err := presigner.PresignedURL(ctx, file.StorageKey, s.presignTTL)
		if err == nil {
			return &FileContent{File: file, RedirectURL: url}, nil
		}
		slog.Warn("failed to presign object, streaming instead", "error", err, "storage_key", file.StorageKey)
	}

	body, err := s.storage.Get(ctx, file.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	return &FileContent{File: file, Body: body}, nil
}

// Object opens a stored object by name within the user's own namespace.
func (s *FileService) Object(ctx context.Context, userID, name string) (io.ReadCloser, error) {
	body, err := s.storage.Get(ctx, s.storage.Key(userID, name))
	if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	return body, nil
}

// DeleteAllUserObjects removes every stored object of a user, continuing past failures.
func (s *FileService) DeleteAllUserObjects(ctx context.Context, userID string) error {
	files, err := s.fileRepo.UserFiles(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		delCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
		err = s.storage.Delete(delCtx, file.StorageKey)
		cancel()
		if err != nil {
			slog.Warn("failed to delete object from storage", "storage_key", file.StorageKey, "error", err)
		}
	}

	return nil
}

// Backend names the storage backend in use.
func (s *FileService) Backend() string {
	return s.storage.Name()
}
