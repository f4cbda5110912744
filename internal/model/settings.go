package model

import (
	"encoding/json"
	"time"
)

const (
	DefaultTheme           = "light"
	DefaultNotifications   = true
	DefaultWeatherLocation = "New York"
	DefaultDashboardLayout = "grid"
)

type UserSettings struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"userId"`
	Theme           string    `db:"theme" json:"theme"`
	Notifications   bool      `db:"notifications" json:"notifications"`
	WeatherLocation string    `db:"weather_location" json:"weatherLocation"`
	DashboardLayout string    `db:"dashboard_layout" json:"dashboardLayout"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// SettingsUpdate carries the fields of a partial settings update.
// Nil fields are left untouched.
type SettingsUpdate struct {
	Theme           *string `json:"theme"`
	Notifications   *bool   `json:"notifications"`
	WeatherLocation *string `json:"weatherLocation"`
	DashboardLayout *string `json:"dashboardLayout"`
}

// DefaultSettings returns the settings a user starts with.
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:          userID,
		Theme:           DefaultTheme,
		Notifications:   DefaultNotifications,
		WeatherLocation: DefaultWeatherLocation,
		DashboardLayout: DefaultDashboardLayout,
	}
}

// Apply merges the supplied fields into s. Empty strings count as not supplied.
func (u SettingsUpdate) Apply(s *UserSettings) {
	if u.Theme != nil && *u.Theme != "" {
		s.Theme = *u.Theme
	}
	if u.Notifications != nil {
		s.Notifications = *u.Notifications
	}
	if u.WeatherLocation != nil && *u.WeatherLocation != "" {
		s.WeatherLocation = *u.WeatherLocation
	}
	if u.DashboardLayout != nil && *u.DashboardLayout != "" {
		s.DashboardLayout = *u.DashboardLayout
	}
}

// UnmarshalJSON keeps only fields of the expected JSON type, so
// {"notifications": "yes"} leaves notifications untouched instead of failing.
func (u *SettingsUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	*u = SettingsUpdate{
		Theme:           stringField(raw, "theme"),
		WeatherLocation: stringField(raw, "weatherLocation"),
		DashboardLayout: stringField(raw, "dashboardLayout"),
	}
	if b, ok := raw["notifications"].(bool); ok {
		u.Notifications = &b
	}
	return nil
}

func stringField(raw map[string]any, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &s
}
