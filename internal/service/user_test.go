package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/deskboard/internal/db/dbtest"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
)

type userFixture struct {
	users   *UserService
	files   *FileService
	repo    *memFileRepo
	storage *memStorage
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	database := dbtest.Open(t)
	seedUser(t, database, "u1")

	repo := &memFileRepo{}
	store := newMemStorage()
	files := NewFileService(repo, store, 0)
	settings := NewSettingsService(repository.NewSettingsRepository(database))
	email := NewEmailService("", "noreply@example.com", "http://localhost", "Deskboard", true)

	return &userFixture{
		users:   NewUserService(repository.NewUserRepository(database), repo, files, settings, email),
		files:   files,
		repo:    repo,
		storage: store,
	}
}

func (f *userFixture) addFile(userID, mimeType string, size int64, uploadedAt time.Time) *model.File {
	file := &model.File{
		ID:         userID + "-" + uploadedAt.Format(time.RFC3339Nano),
		UserID:     userID,
		Type:       mimeType,
		Size:       size,
		StorageKey: userID + "/" + uploadedAt.Format("150405"),
		UploadedAt: uploadedAt,
	}
	f.repo.files = append(f.repo.files, file)
	return file
}

func TestAnalytics(t *testing.T) {
	f := newUserFixture(t)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	f.addFile("u1", "image/png", 100, now.AddDate(0, 0, -30))
	f.addFile("u1", "image/jpeg", 200, now.AddDate(0, 0, -6).Add(-14*time.Hour))
	f.addFile("u1", "application/pdf", 300, now.AddDate(0, 0, -1))
	f.addFile("u1", "text/plain", 40, now.Add(-time.Hour))
	f.addFile("u1", "image/gif", 60, now.Add(-2*time.Hour))
	f.addFile("u2", "image/png", 999, now)

	analytics, err := f.users.Analytics("u1", 0, now)
	require.NoError(t, err)

	require.Len(t, analytics.Days, DefaultAnalyticsDays)
	assert.Equal(t, "2025-03-04", analytics.Days[0].Date)
	assert.Equal(t, "2025-03-10", analytics.Days[6].Date)
	assert.Equal(t, 1, analytics.Days[0].Uploads)
	assert.Equal(t, int64(200), analytics.Days[0].Bytes)
	assert.Equal(t, 1, analytics.Days[5].Uploads)
	assert.Equal(t, 2, analytics.Days[6].Uploads)
	assert.Equal(t, int64(100), analytics.Days[6].Bytes)

	assert.Equal(t, 5, analytics.TotalFiles)
	assert.Equal(t, int64(700), analytics.TotalSize)
	assert.Equal(t, 4, analytics.PeriodUploads)
	assert.Equal(t, int64(600), analytics.PeriodBytes)

	require.Len(t, analytics.ByType, 3)
	assert.Equal(t, model.TypeUsage{Type: "image", Count: 3, Size: 360}, analytics.ByType[0])
	assert.Equal(t, model.TypeUsage{Type: "application", Count: 1, Size: 300}, analytics.ByType[1])
	assert.Equal(t, model.TypeUsage{Type: "text", Count: 1, Size: 40}, analytics.ByType[2])
}

func TestAnalyticsClampsDays(t *testing.T) {
	f := newUserFixture(t)

	analytics, err := f.users.Analytics("u1", 1000, time.Now())
	require.NoError(t, err)
	assert.Len(t, analytics.Days, MaxAnalyticsDays)
	assert.Empty(t, analytics.ByType)
	assert.NotNil(t, analytics.ByType)
}

func TestDashboard(t *testing.T) {
	f := newUserFixture(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 7 {
		f.addFile("u1", "image/png", 10, base.Add(time.Duration(i)*time.Hour))
	}

	summary, err := f.users.Dashboard("u1")
	require.NoError(t, err)
	assert.Equal(t, 7, summary.FilesCount)
	assert.Equal(t, int64(70), summary.TotalSize)
	assert.Equal(t, time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), summary.JoinedDate.UTC())
	require.Len(t, summary.RecentFiles, RecentFilesLimit)
	assert.True(t, summary.RecentFiles[0].UploadedAt.Equal(base.Add(6*time.Hour)))
}

func TestProfile(t *testing.T) {
	f := newUserFixture(t)
	f.addFile("u1", "image/png", 10, time.Now())

	profile, err := f.users.Profile("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Len(t, profile.Files, 1)
	assert.Equal(t, model.DefaultTheme, profile.Settings.Theme)
}

func TestUpdateName(t *testing.T) {
	f := newUserFixture(t)

	user, err := f.users.UpdateName("u1", "  Grace  ")
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)

	_, err = f.users.UpdateName("u1", "   ")
	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestDeleteAccount(t *testing.T) {
	f := newUserFixture(t)
	file, err := f.files.Upload(context.Background(), "u1", pngUpload(10))
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteAccount(context.Background(), "u1"))
	assert.False(t, f.storage.has(file.StorageKey))

	_, err = f.users.ByID("u1")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
