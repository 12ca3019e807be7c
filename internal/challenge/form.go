package challenge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/utils"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrWishRequired        = errors.New("wish is required")
	ErrDailyActionRequired = errors.New("daily action is required")
	ErrEndBeforeStart      = errors.New("end date must not be before start date")
)

// Input holds the editable fields of a challenge as entered by the user.
type Input struct {
	Title       string
	Wish        string
	DailyAction string
	Emoji       string
	StartDate   time.Time
	// EndDate defaults to StartDate plus the configured challenge length minus one.
	EndDate *time.Time
}

// ParseDate reads a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DefaultEndDate returns the last day of a challenge of lengthDays starting on start.
func DefaultEndDate(start time.Time, lengthDays int) time.Time {
	if lengthDays <= 0 {
		lengthDays = constants.DefaultLengthDays
	}
	return start.AddDate(0, 0, lengthDays-1)
}

// Normalize trims text fields, reduces the emoji and fills in a missing end date.
func (in Input) Normalize(defaultEmoji string, lengthDays int) Input {
	if defaultEmoji == "" {
		defaultEmoji = constants.DefaultEmoji
	}
	out := in
	out.Title = strings.TrimSpace(in.Title)
	out.Wish = strings.TrimSpace(in.Wish)
	out.DailyAction = strings.TrimSpace(in.DailyAction)
	out.Emoji = NormalizeEmoji(in.Emoji, defaultEmoji)
	out.StartDate = utils.InLocation(in.StartDate, time.UTC)
	if in.EndDate == nil {
		end := DefaultEndDate(out.StartDate, lengthDays)
		out.EndDate = &end
	} else {
		end := utils.InLocation(*in.EndDate, time.UTC)
		out.EndDate = &end
	}
	return out
}

// Validate checks a normalized input.
func (in Input) Validate() error {
	var errs []error
	if in.Title == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if in.Wish == "" {
		errs = append(errs, ErrWishRequired)
	}
	if in.DailyAction == "" {
		errs = append(errs, ErrDailyActionRequired)
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		errs = append(errs, ErrEndBeforeStart)
	}
	return errors.Join(errs...)
}
