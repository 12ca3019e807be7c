package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/thirtyday/internal/calendar"
	"github.com/julianstephens/thirtyday/internal/constants"
)

const (
	markDone    = "[x]"
	markOpen    = "[ ]"
	markFuture  = " - "
	blankCell   = "   "
	streakJoint = "="
)

// cellStyle decorates the rendered text of one cell. index is the cell's position
// in the flattened grid; placeholder cells pass through it as well.
type cellStyle func(index int, day calendar.Day, text string) string

func plainStyle(_ int, _ calendar.Day, text string) string { return text }

// Header returns the two-letter weekday names starting at weekStart.
func Header(weekStart time.Weekday) string {
	names := make([]string, constants.DaysPerWeek)
	for c := range names {
		wd := time.Weekday((int(weekStart) + c) % constants.DaysPerWeek)
		names[c] = fmt.Sprintf("%-3s", wd.String()[:2])
	}
	return strings.TrimRight(strings.Join(names, " "), " ")
}

func dayNumber(d calendar.Day) string {
	if !d.IsShown {
		return blankCell
	}
	return fmt.Sprintf("%2d ", d.Date.Day())
}

func mark(d calendar.Day) string {
	switch {
	case !d.IsShown:
		return blankCell
	case d.IsComplete():
		return markDone
	case d.IsAccessible:
		return markOpen
	default:
		return markFuture
	}
}

// joint returns the separator between two neighbouring cells of the mark line.
func joint(left, right calendar.Day) string {
	if left.RightStreak && right.LeftStreak {
		return streakJoint
	}
	return " "
}

func render(rows [][]calendar.Day, weekStart time.Weekday, numStyle, markStyle cellStyle) string {
	var b strings.Builder
	b.WriteString(Header(weekStart))
	b.WriteString("\n")

	index := 0
	for _, row := range rows {
		var nums, marks strings.Builder
		for c, d := range row {
			if c > 0 {
				nums.WriteString(" ")
				marks.WriteString(joint(row[c-1], d))
			}
			nums.WriteString(numStyle(index+c, d, dayNumber(d)))
			marks.WriteString(markStyle(index+c, d, mark(d)))
		}
		index += len(row)

		b.WriteString(strings.TrimRight(nums.String(), " "))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(marks.String(), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderText draws the grid without styling: a weekday header, then for every week
// a line of day numbers and a line of marks. Completed days show [x], open days [ ],
// days still ahead " - ", and runs of completed days are joined with "=".
func RenderText(rows [][]calendar.Day, weekStart time.Weekday) string {
	return render(rows, weekStart, plainStyle, plainStyle)
}
