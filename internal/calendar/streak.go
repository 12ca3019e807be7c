package calendar

import (
	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// Streaks reports whether a completed day connects to the completed day before (left)
// and after (right) it. Neighbours are looked up in the full progress index, and a
// connector never crosses a week boundary.
func (b *Builder) Streaks(day Day, progress ProgressIndex) (left, right bool) {
	if !day.IsComplete() {
		return false, false
	}
	loc := b.location()

	if day.Col != 0 {
		left = progress.IsComplete(utils.AddDays(day.Date, -1, loc), loc)
	}
	if day.Col != constants.DaysPerWeek-1 {
		right = progress.IsComplete(utils.AddDays(day.Date, 1, loc), loc)
	}
	return left, right
}
