package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/deskboard/internal/db/dbtest"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
)

func seedUser(t *testing.T, database *sqlx.DB, id string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "User " + id,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repository.NewUserRepository(database).Create(user))
	return user
}

func TestSettingsCreatesDefaultsOnce(t *testing.T) {
	database := dbtest.Open(t)
	seedUser(t, database, "u1")
	svc := NewSettingsService(repository.NewSettingsRepository(database))

	first, err := svc.Settings("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, model.DefaultTheme, first.Theme)
	assert.True(t, first.Notifications)
	assert.Equal(t, model.DefaultWeatherLocation, first.WeatherLocation)
	assert.Equal(t, model.DefaultDashboardLayout, first.DashboardLayout)

	second, err := svc.Settings("u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSettingsPartialUpdate(t *testing.T) {
	database := dbtest.Open(t)
	seedUser(t, database, "u1")
	svc := NewSettingsService(repository.NewSettingsRepository(database))

	var update model.SettingsUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"theme":"dark"}`), &update))

	updated, err := svc.Update("u1", update)
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Theme)
	assert.True(t, updated.Notifications)
	assert.Equal(t, model.DefaultWeatherLocation, updated.WeatherLocation)

	var second model.SettingsUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"notifications":false,"weatherLocation":"Berlin"}`), &second))
	updated, err = svc.Update("u1", second)
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Theme)
	assert.False(t, updated.Notifications)
	assert.Equal(t, "Berlin", updated.WeatherLocation)

	stored, err := svc.Settings("u1")
	require.NoError(t, err)
	assert.Equal(t, updated.ID, stored.ID)
	assert.Equal(t, "Berlin", stored.WeatherLocation)
	assert.False(t, stored.Notifications)
}

func TestSettingsUpdateRejectsInvalidTheme(t *testing.T) {
	database := dbtest.Open(t)
	seedUser(t, database, "u1")
	svc := NewSettingsService(repository.NewSettingsRepository(database))

	theme := "neon"
	_, err := svc.Update("u1", model.SettingsUpdate{Theme: &theme})

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))

	stored, err := svc.Settings("u1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTheme, stored.Theme)
}
