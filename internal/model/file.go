package model

import (
	"time"
)

// File is the metadata row for one stored object. UserID and UploadedAt are
// set once at upload time and never change; Size and Type describe the object
// as it was uploaded and are not revalidated.
type File struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Name         string    `db:"name" json:"name"` // Object name in the backend: <timestamp>-<suffix>.<ext>
	OriginalName string    `db:"original_name" json:"originalName"`
	Size         int64     `db:"size" json:"size"`
	Type         string    `db:"type" json:"type"`
	URL          string    `db:"url" json:"url"`
	StorageKey   string    `db:"storage_key" json:"-"` // Full backend key, e.g. uploads/<user>/<name>
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}
