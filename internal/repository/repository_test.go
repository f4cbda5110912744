package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/deskboard/internal/db/dbtest"
	"github.com/templui/deskboard/internal/model"
)

func createUser(t *testing.T, database *sqlx.DB, id string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "User " + id,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, NewUserRepository(database).Create(user))
	return user
}

func createFile(t *testing.T, database *sqlx.DB, userID string, n int, uploadedAt time.Time) *model.File {
	t.Helper()
	name := fmt.Sprintf("%d-abcdef.txt", n)
	file := &model.File{
		ID:           fmt.Sprintf("%s-file-%d", userID, n),
		UserID:       userID,
		Name:         name,
		OriginalName: "notes.txt",
		Size:         int64(100 * n),
		Type:         "text/plain",
		URL:          "/uploads/" + userID + "/" + name,
		StorageKey:   userID + "/" + name,
		UploadedAt:   uploadedAt.UTC(),
	}
	require.NoError(t, NewFileRepository(database).Create(file))
	return file
}

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return dbtest.Open(t)
}

var fileFixture = model.File{
	ID:           "f1",
	UserID:       "u1",
	Name:         "1-abcdef.txt",
	OriginalName: "notes.txt",
	Size:         5,
	Type:         "text/plain",
	URL:          "/uploads/u1/1-abcdef.txt",
	StorageKey:   "u1/1-abcdef.txt",
	UploadedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
}
