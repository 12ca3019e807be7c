package calendar

import (
	"sort"
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// Day is one cell of the calendar grid.
type Day struct {
	Date         time.Time
	Col          int
	Progress     *models.DailyProgress
	IsAccessible bool
	IsShown      bool
	LeftStreak   bool
	RightStreak  bool
}

// IsComplete reports whether the day has a completed progress record.
func (d Day) IsComplete() bool {
	return d.Progress != nil && d.Progress.Completion
}

// Builder lays a challenge's date range onto week rows.
type Builder struct {
	Location  *time.Location
	WeekStart time.Weekday
	Now       func() time.Time
}

func NewBuilder(loc *time.Location, weekStart time.Weekday) *Builder {
	return &Builder{
		Location:  loc,
		WeekStart: weekStart,
		Now:       time.Now,
	}
}

func (b *Builder) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

func (b *Builder) today() time.Time {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return utils.StartOfDay(now(), b.location())
}

// Column returns the week column (0..6) of t relative to the configured first weekday.
func (b *Builder) Column(t time.Time) int {
	wd := t.In(b.location()).Weekday()
	return (int(wd) - int(b.WeekStart) + constants.DaysPerWeek) % constants.DaysPerWeek
}

// Build returns the row-major grid for the range start..end (inclusive).
// Rows hold 7 cells; only the last row may be shorter. An inverted range yields no rows.
func (b *Builder) Build(start, end time.Time, progress ProgressIndex) [][]Day {
	loc := b.location()
	start = utils.StartOfDay(start, loc)
	end = utils.StartOfDay(end, loc)
	if start.After(end) {
		return nil
	}

	today := b.today()
	startCol := b.Column(start)
	cells := make([]Day, 0, startCol+utils.DaysBetween(start, end, loc)+constants.DaysPerWeek)

	for i := startCol; i > 0; i-- {
		cells = append(cells, b.placeholder(utils.AddDays(start, -i, loc)))
	}

	last := start
	cur := start
	for n := 0; !cur.After(end) && n < constants.MaxGridDays; n++ {
		cells = append(cells, Day{
			Date:         cur,
			Col:          b.Column(cur),
			Progress:     progress.Lookup(cur, loc),
			IsAccessible: !today.Before(cur),
			IsShown:      true,
		})
		last = cur
		cur = utils.AddDays(cur, 1, loc)
	}

	// Pad from the last day actually walked so a truncated range still ends on a full week.
	if daysToAdd := constants.DaysPerWeek - 1 - b.Column(last); daysToAdd > 0 {
		for i := 1; i <= daysToAdd; i++ {
			cells = append(cells, b.placeholder(utils.AddDays(last, i, loc)))
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Date.Before(cells[j].Date)
	})

	for i := range cells {
		if cells[i].IsShown {
			cells[i].LeftStreak, cells[i].RightStreak = b.Streaks(cells[i], progress)
		}
	}

	return chunk(cells, constants.DaysPerWeek)
}

func (b *Builder) placeholder(t time.Time) Day {
	return Day{
		Date: t,
		Col:  b.Column(t),
	}
}

func chunk(cells []Day, size int) [][]Day {
	rows := make([][]Day, 0, (len(cells)+size-1)/size)
	for len(cells) > 0 {
		n := size
		if len(cells) < n {
			n = len(cells)
		}
		rows = append(rows, cells[:n:n])
		cells = cells[n:]
	}
	return rows
}
