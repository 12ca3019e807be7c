package constants

import "time"

const (
	SettingWeekStart         = "week_start"
	SettingTimezone          = "timezone"
	SettingDefaultEmoji      = "default_emoji"
	SettingDefaultLengthDays = "default_length_days"

	DefaultWeekStart = time.Sunday
	DefaultTimezone  = "Local" // Use system local timezone by default
)
