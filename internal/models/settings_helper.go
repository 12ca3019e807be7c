package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingWeekStart:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 6 {
				return Settings{}, fmt.Errorf("parsing week_start: invalid weekday %q", value)
			}
			settings.WeekStart = time.Weekday(n)
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultEmoji:
			settings.DefaultEmoji = value
		case constants.SettingDefaultLengthDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultLengthDays); err != nil {
				return Settings{}, fmt.Errorf("parsing default_length_days: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingWeekStart:         strconv.Itoa(int(settings.WeekStart)),
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingDefaultEmoji:      settings.DefaultEmoji,
		constants.SettingDefaultLengthDays: strconv.Itoa(settings.DefaultLengthDays),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultEmoji == "" {
		settings.DefaultEmoji = constants.DefaultEmoji
	}
	if settings.DefaultLengthDays <= 0 {
		settings.DefaultLengthDays = constants.DefaultLengthDays
	}
}

// DefaultSettings returns the settings written by a fresh Init.
func DefaultSettings() Settings {
	s := Settings{WeekStart: constants.DefaultWeekStart}
	ApplyDefaultSettings(&s)
	return s
}
