package calendar

import (
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// Summary aggregates progress over a challenge's range.
type Summary struct {
	TotalDays     int
	ElapsedDays   int
	Completed     int
	CurrentStreak int
	LongestStreak int
}

// Summarize counts completion and streaks for start..end. Days after today are never
// counted as elapsed. The current streak ends today, or yesterday when today is not done yet,
// and is 0 once the range is over.
func (b *Builder) Summarize(start, end time.Time, progress ProgressIndex) Summary {
	loc := b.location()
	start = utils.StartOfDay(start, loc)
	end = utils.StartOfDay(end, loc)
	if start.After(end) {
		return Summary{}
	}
	today := b.today()

	var s Summary
	run := 0
	cur := start
	for n := 0; !cur.After(end) && n < constants.MaxGridDays; n++ {
		s.TotalDays++
		done := progress.IsComplete(cur, loc)
		if done {
			s.Completed++
			run++
			if run > s.LongestStreak {
				s.LongestStreak = run
			}
		} else {
			run = 0
		}
		if !cur.After(today) {
			s.ElapsedDays++
		}
		cur = utils.AddDays(cur, 1, loc)
	}

	if today.After(end) {
		return s
	}
	last := today
	if !progress.IsComplete(today, loc) {
		last = utils.AddDays(today, -1, loc)
	}
	for d := last; !d.Before(start) && progress.IsComplete(d, loc); d = utils.AddDays(d, -1, loc) {
		s.CurrentStreak++
	}

	return s
}

// Percent returns the completed share of the total days, 0..100.
func (s Summary) Percent() int {
	if s.TotalDays == 0 {
		return 0
	}
	return s.Completed * 100 / s.TotalDays
}
