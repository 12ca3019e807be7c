package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// dayStart returns the first instant of the civil date y-m-d in loc. Where a DST change
// skips midnight, time.Date normalizes 00:00 into the previous day, so step forward
// until the date is reached. A date the zone skipped entirely yields the next day.
func dayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	civil := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	t := time.Date(civil.Year(), civil.Month(), civil.Day(), 0, 0, 0, 0, loc)
	for i := 0; i < 4*48 && civilDate(t).Before(civil); i++ {
		t = t.Add(15 * time.Minute)
	}
	return t
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the start of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return dayStart(t.Year(), t.Month(), t.Day(), loc)
}

// InLocation moves the calendar date of t (its own year, month and day) to the start of
// that day in loc. Stored dates carry no zone, so they are rebased rather than converted.
func InLocation(t time.Time, loc *time.Location) time.Time {
	return dayStart(t.Year(), t.Month(), t.Day(), loc)
}

// AddDays moves t by n calendar days. The result is the start of the target day in loc,
// which is midnight except where a DST change skips it.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	t = t.In(loc)
	return dayStart(t.Year(), t.Month(), t.Day()+n, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}

// DayKey formats the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return dayStart(t.Year(), t.Month(), t.Day(), loc), nil
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time, loc *time.Location) int {
	da := a.In(loc)
	db := b.In(loc)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
