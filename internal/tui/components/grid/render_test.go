package grid

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/thirtyday/internal/calendar"
	"github.com/julianstephens/thirtyday/internal/models"
)

func marchGrid(t *testing.T, now time.Time, doneDays ...string) [][]calendar.Day {
	t.Helper()
	b := calendar.NewBuilder(time.UTC, time.Sunday)
	b.Now = func() time.Time { return now }

	var records []models.DailyProgress
	for _, d := range doneDays {
		records = append(records, models.DailyProgress{ID: d, ChallengeID: "c1", Day: d, Completion: true})
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	return b.Build(start, end, calendar.NewProgressIndex(records))
}

func TestHeader(t *testing.T) {
	tests := []struct {
		start time.Weekday
		want  string
	}{
		{time.Sunday, "Su  Mo  Tu  We  Th  Fr  Sa"},
		{time.Monday, "Mo  Tu  We  Th  Fr  Sa  Su"},
	}
	for _, tt := range tests {
		if got := Header(tt.start); got != tt.want {
			t.Errorf("Header(%v) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	rows := marchGrid(t, time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC), "2024-03-05", "2024-03-06", "2024-03-07")
	out := RenderText(rows, time.Sunday)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Header plus two lines per week.
	if len(lines) != 1+2*len(rows) {
		t.Fatalf("got %d lines for %d rows:\n%s", len(lines), len(rows), out)
	}

	// March 1st 2024 is a Friday: five blank cells lead the first week.
	if want := strings.Repeat(" ", 20) + " 1   2"; lines[1] != want {
		t.Errorf("first week numbers = %q, want %q", lines[1], want)
	}
	if want := strings.Repeat(" ", 20) + "[ ] [ ]"; lines[2] != want {
		t.Errorf("first week marks = %q, want %q", lines[2], want)
	}

	if want := "[ ] [ ] [x]=[x]=[x] [ ] [ ]"; lines[4] != want {
		t.Errorf("second week marks = %q, want %q", lines[4], want)
	}
}

func TestRenderTextFutureDays(t *testing.T) {
	rows := marchGrid(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))
	out := RenderText(rows, time.Sunday)
	lines := strings.Split(out, "\n")

	if want := strings.TrimRight(" - "+strings.Repeat("  - ", 6), " "); lines[4] != want {
		t.Errorf("future week marks = %q, want %q", lines[4], want)
	}
}

func TestRenderTextNoStreakAcrossWeeks(t *testing.T) {
	// Saturday the 9th and Sunday the 10th sit in different rows.
	rows := marchGrid(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "2024-03-09", "2024-03-10")
	out := RenderText(rows, time.Sunday)
	lines := strings.Split(out, "\n")

	if want := "[ ] [ ] [ ] [ ] [ ] [ ] [x]"; lines[4] != want {
		t.Errorf("second week marks = %q, want %q", lines[4], want)
	}
	if want := "[x] [ ] [ ] [ ] [ ] [ ] [ ]"; lines[6] != want {
		t.Errorf("third week marks = %q, want %q", lines[6], want)
	}
}
