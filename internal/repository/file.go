package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/deskboard/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

const fileColumns = `id, user_id, name, original_name, size, type, url, storage_key, uploaded_at`

// FileStats aggregates a user's stored files.
type FileStats struct {
	Count     int   `db:"count"`
	TotalSize int64 `db:"total_size"`
}

type FileRepository interface {
	Create(file *model.File) error
	ByIDForUser(id, userID string) (*model.File, error)
	UserFiles(userID string) ([]*model.File, error)
	Recent(userID string, limit int) ([]*model.File, error)
	Stats(userID string) (*FileStats, error)
	Delete(id, userID string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (` + fileColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		file.ID,
		file.UserID,
		file.Name,
		file.OriginalName,
		file.Size,
		file.Type,
		file.URL,
		file.StorageKey,
		file.UploadedAt,
	)

	return err
}

// ByIDForUser returns the file only when it belongs to userID, so a foreign id
// is indistinguishable from a missing one.
func (r *fileRepository) ByIDForUser(id, userID string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND user_id = $2`

	err := r.db.Get(file, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (r *fileRepository) UserFiles(userID string) ([]*model.File, error) {
	files := []*model.File{}
	query := `SELECT ` + fileColumns + ` FROM files WHERE user_id = $1 ORDER BY uploaded_at DESC`

	err := r.db.Select(&files, query, userID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Recent(userID string, limit int) ([]*model.File, error) {
	files := []*model.File{}
	query := `SELECT ` + fileColumns + ` FROM files WHERE user_id = $1 ORDER BY uploaded_at DESC LIMIT $2`

	err := r.db.Select(&files, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Stats(userID string) (*FileStats, error) {
	stats := &FileStats{}
	query := `SELECT COUNT(*) AS count, COALESCE(SUM(size), 0) AS total_size FROM files WHERE user_id = $1`

	err := r.db.Get(stats, query, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *fileRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM files WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(result, ErrFileNotFound)
}
