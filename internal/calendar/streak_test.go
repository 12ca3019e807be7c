package calendar

import (
	"testing"
	"time"
)

func findDay(t *testing.T, rows [][]Day, day int) Day {
	t.Helper()
	for _, d := range flatten(rows) {
		if d.IsShown && d.Date.Day() == day {
			return d
		}
	}
	t.Fatalf("day %d not found in grid", day)
	return Day{}
}

func TestStreaksWithinWeek(t *testing.T) {
	b := newTestBuilder(date(2024, 3, 31))
	progress := completedOn("2024-03-05", "2024-03-06", "2024-03-07")
	rows := b.Build(date(2024, 3, 1), date(2024, 3, 30), progress)

	tests := []struct {
		day         int
		left, right bool
	}{
		{4, false, false},
		{5, false, true},
		{6, true, true},
		{7, true, false},
		{8, false, false},
	}
	for _, tt := range tests {
		d := findDay(t, rows, tt.day)
		if d.LeftStreak != tt.left || d.RightStreak != tt.right {
			t.Errorf("Mar %d: streak = (%v, %v), want (%v, %v)", tt.day, d.LeftStreak, d.RightStreak, tt.left, tt.right)
		}
	}
}

func TestStreaksStopAtWeekBoundary(t *testing.T) {
	b := newTestBuilder(date(2024, 3, 31))
	// Saturday Mar 9 (col 6) and Sunday Mar 10 (col 0)
	progress := completedOn("2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11")
	rows := b.Build(date(2024, 3, 1), date(2024, 3, 30), progress)

	sat := findDay(t, rows, 9)
	if sat.Col != 6 {
		t.Fatalf("expected Mar 9 in col 6, got %d", sat.Col)
	}
	if !sat.LeftStreak || sat.RightStreak {
		t.Errorf("Saturday streak = (%v, %v), want (true, false)", sat.LeftStreak, sat.RightStreak)
	}

	sun := findDay(t, rows, 10)
	if sun.Col != 0 {
		t.Fatalf("expected Mar 10 in col 0, got %d", sun.Col)
	}
	if sun.LeftStreak || !sun.RightStreak {
		t.Errorf("Sunday streak = (%v, %v), want (false, true)", sun.LeftStreak, sun.RightStreak)
	}
}

func TestStreaksUseProgressOutsideRange(t *testing.T) {
	b := newTestBuilder(date(2024, 3, 31))
	progress := completedOn("2024-03-04", "2024-03-05")
	rows := b.Build(date(2024, 3, 5), date(2024, 3, 7), progress)

	d := findDay(t, rows, 5)
	if !d.LeftStreak {
		t.Error("expected left streak to Mar 4 even though it is outside the visible range")
	}
}

func TestStreaksRequireCompletedDay(t *testing.T) {
	b := newTestBuilder(date(2024, 3, 31))
	progress := completedOn("2024-03-05", "2024-03-06", "2024-03-07")
	progress["2024-03-06"].Completion = false

	rows := b.Build(date(2024, 3, 1), date(2024, 3, 30), progress)
	mid := findDay(t, rows, 6)
	if mid.LeftStreak || mid.RightStreak {
		t.Error("incomplete day must not report streaks")
	}
	if findDay(t, rows, 5).RightStreak {
		t.Error("Mar 5 must not connect to an incomplete Mar 6")
	}
}

func TestStreaksIgnorePlaceholders(t *testing.T) {
	b := newTestBuilder(date(2024, 3, 31))
	left, right := b.Streaks(Day{Date: date(2024, 3, 6), Col: 3}, completedOn("2024-03-05", "2024-03-07"))
	if left || right {
		t.Error("a day without progress never has streaks")
	}
}

func TestSummarize(t *testing.T) {
	progress := completedOn(
		"2024-03-01", "2024-03-02", "2024-03-03",
		"2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08",
	)

	tests := []struct {
		name    string
		now     time.Time
		elapsed int
		current int
	}{
		{"today completed", date(2024, 3, 8).Add(9 * time.Hour), 8, 4},
		{"today pending", date(2024, 3, 9).Add(9 * time.Hour), 9, 4},
		{"streak broken", date(2024, 3, 10).Add(9 * time.Hour), 10, 0},
		{"after range", date(2024, 4, 10), 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(tt.now)
			s := b.Summarize(date(2024, 3, 1), date(2024, 3, 30), progress)
			if s.TotalDays != 30 {
				t.Errorf("TotalDays = %d, want 30", s.TotalDays)
			}
			if s.Completed != 7 {
				t.Errorf("Completed = %d, want 7", s.Completed)
			}
			if s.LongestStreak != 4 {
				t.Errorf("LongestStreak = %d, want 4", s.LongestStreak)
			}
			if s.ElapsedDays != tt.elapsed {
				t.Errorf("ElapsedDays = %d, want %d", s.ElapsedDays, tt.elapsed)
			}
			if s.CurrentStreak != tt.current {
				t.Errorf("CurrentStreak = %d, want %d", s.CurrentStreak, tt.current)
			}
		})
	}
}

func TestSummaryPercent(t *testing.T) {
	if got := (Summary{TotalDays: 30, Completed: 15}).Percent(); got != 50 {
		t.Errorf("Percent() = %d, want 50", got)
	}
	if got := (Summary{}).Percent(); got != 0 {
		t.Errorf("Percent() on empty summary = %d, want 0", got)
	}
}

func TestSummarizeFinishedChallengeHasNoCurrentStreak(t *testing.T) {
	progress := completedOn("2024-03-28", "2024-03-29", "2024-03-30")

	tests := []struct {
		name    string
		now     time.Time
		current int
	}{
		{"last day", date(2024, 3, 30).Add(20 * time.Hour), 3},
		{"day after end", date(2024, 3, 31).Add(9 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestBuilder(tt.now).Summarize(date(2024, 3, 1), date(2024, 3, 30), progress)
			if s.CurrentStreak != tt.current {
				t.Errorf("CurrentStreak = %d, want %d", s.CurrentStreak, tt.current)
			}
			if s.LongestStreak != 3 {
				t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
			}
		})
	}
}
