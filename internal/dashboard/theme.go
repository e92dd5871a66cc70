package dashboard

import (
	"time"

	"weather-dashboard/internal/weather"
)

// Theme is the user's persisted theme preference.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a supported theme preference.
func (t Theme) Valid() bool {
	return t == ThemeAuto || t == ThemeLight || t == ThemeDark
}

// Appearance is the resolved visual mode after applying the auto heuristic.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// resolveAppearance maps a theme preference to an appearance. Auto uses the
// observation's sunrise/sunset window once data is available; before any city
// is loaded it falls back to a fixed local-hour window.
func resolveAppearance(t Theme, obs *weather.CurrentObservation, now time.Time) Appearance {
	switch t {
	case ThemeLight:
		return AppearanceLight
	case ThemeDark:
		return AppearanceDark
	}

	if obs != nil {
		if obs.Daytime() {
			return AppearanceLight
		}
		return AppearanceDark
	}

	hour := now.Hour()
	if hour < 6 || hour > 18 {
		return AppearanceDark
	}
	return AppearanceLight
}
