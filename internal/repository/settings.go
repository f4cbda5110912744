package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/deskboard/internal/model"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

const settingsColumns = `id, user_id, theme, notifications, weather_location, dashboard_layout, created_at, updated_at`

type SettingsRepository interface {
	ByUserID(userID string) (*model.UserSettings, error)
	Create(settings *model.UserSettings) error
	Update(settings *model.UserSettings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ByUserID(userID string) (*model.UserSettings, error) {
	settings := &model.UserSettings{}
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`

	err := r.db.Get(settings, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Create inserts a settings row. A concurrent insert for the same user is a
// no-op; callers re-read to get the winning row.
func (r *settingsRepository) Create(settings *model.UserSettings) error {
	query := `INSERT INTO user_settings (` + settingsColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id) DO NOTHING`

	_, err := r.db.Exec(query,
		settings.ID,
		settings.UserID,
		settings.Theme,
		settings.Notifications,
		settings.WeatherLocation,
		settings.DashboardLayout,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	return err
}

func (r *settingsRepository) Update(settings *model.UserSettings) error {
	query := `UPDATE user_settings
	          SET theme = $1, notifications = $2, weather_location = $3, dashboard_layout = $4, updated_at = $5
	          WHERE user_id = $6`

	result, err := r.db.Exec(query,
		settings.Theme,
		settings.Notifications,
		settings.WeatherLocation,
		settings.DashboardLayout,
		settings.UpdatedAt,
		settings.UserID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, ErrSettingsNotFound)
}
