package validation

import (
	"fmt"

	"github.com/templui/deskboard/internal/model"
)

var (
	themes  = map[string]bool{"light": true, "dark": true, "system": true}
	layouts = map[string]bool{"grid": true, "list": true}
)

// ValidateSettingsUpdate rejects unknown enum values. Empty strings are
// treated as absent and pass.
func ValidateSettingsUpdate(u model.SettingsUpdate) error {
	if u.Theme != nil && *u.Theme != "" && !themes[*u.Theme] {
		return fmt.Errorf("invalid theme %q: must be light, dark or system", *u.Theme)
	}
	if u.DashboardLayout != nil && *u.DashboardLayout != "" && !layouts[*u.DashboardLayout] {
		return fmt.Errorf("invalid dashboard layout %q: must be grid or list", *u.DashboardLayout)
	}
	if u.WeatherLocation != nil && len(*u.WeatherLocation) > 100 {
		return fmt.Errorf("weather location is too long (max 100 characters)")
	}
	return nil
}
