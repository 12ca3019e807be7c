package models

import "time"

type Settings struct {
	WeekStart         time.Weekday
	Timezone          string
	DefaultEmoji      string
	DefaultLengthDays int
}
