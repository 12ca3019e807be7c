package challenge

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/thirtyday/internal/calendar"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// Tracker holds one challenge's progress in memory, keeps its grid current
// and writes toggles through to the store.
//
// A failed write leaves the in-memory change in place and marks the day pending.
// Pending days are retried on the next Toggle and on Flush.
type Tracker struct {
	mu        sync.Mutex
	store     storage.Provider
	builder   *calendar.Builder
	challenge models.Challenge
	progress  calendar.ProgressIndex
	pending   map[string]struct{}
	grid      [][]calendar.Day
	observers []func([][]calendar.Day)
}

func NewTracker(store storage.Provider, builder *calendar.Builder, c models.Challenge, records []models.DailyProgress) *Tracker {
	t := &Tracker{
		store:     store,
		builder:   builder,
		challenge: c,
		progress:  calendar.NewProgressIndex(records),
		pending:   make(map[string]struct{}),
	}
	t.rebuild()
	return t
}

func (t *Tracker) loc() *time.Location {
	if t.builder.Location == nil {
		return time.Local
	}
	return t.builder.Location
}

func (t *Tracker) span() (time.Time, time.Time) {
	loc := t.loc()
	return utils.InLocation(t.challenge.StartDate, loc), utils.InLocation(t.challenge.EndDate, loc)
}

func (t *Tracker) rebuild() {
	start, end := t.span()
	t.grid = t.builder.Build(start, end, t.progress)
}

func (t *Tracker) Challenge() models.Challenge {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.challenge
}

// Grid returns the current grid rows.
func (t *Tracker) Grid() [][]calendar.Day {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid
}

func (t *Tracker) Summary() calendar.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	start, end := t.span()
	return t.builder.Summarize(start, end, t.progress)
}

// Pending returns the day keys whose last write has not reached the store.
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.pending))
	for k := range t.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Subscribe registers fn to receive the grid after every change.
func (t *Tracker) Subscribe(fn func([][]calendar.Day)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

// Toggle flips the completion of day, creating its record on first use.
// Hidden and future days are ignored. Store failures are logged, never returned.
func (t *Tracker) Toggle(day calendar.Day) {
	if !day.IsShown || !day.IsAccessible {
		return
	}

	t.mu.Lock()
	key := utils.DayKey(day.Date, t.loc())
	now := t.builder.Now
	if now == nil {
		now = time.Now
	}
	ts := now()

	rec := t.progress[key]
	if rec != nil {
		rec.Completion = !rec.Completion
		rec.UpdatedAt = ts
	} else {
		rec = &models.DailyProgress{
			ID:          uuid.New().String(),
			ChallengeID: t.challenge.ID,
			Day:         key,
			Completion:  true,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		t.progress[key] = rec
	}
	t.pending[key] = struct{}{}

	t.flushLocked()
	t.rebuild()
	grid, observers := t.grid, append([]func([][]calendar.Day){}, t.observers...)
	t.mu.Unlock()

	for _, fn := range observers {
		fn(grid)
	}
}

// ToggleDate toggles the visible day matching date. It reports false when the
// date is outside the challenge or still in the future.
func (t *Tracker) ToggleDate(date time.Time) bool {
	for _, row := range t.Grid() {
		for _, d := range row {
			if d.IsShown && utils.SameDay(d.Date, date, t.loc()) {
				if !d.IsAccessible {
					return false
				}
				t.Toggle(d)
				return true
			}
		}
	}
	return false
}

// Flush retries every pending write and returns the combined failures.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *Tracker) flushLocked() error {
	var errs []error
	for key := range t.pending {
		rec := t.progress[key]
		if rec == nil {
			delete(t.pending, key)
			continue
		}
		if err := t.store.SaveProgress(*rec); err != nil {
			logger.Error("Failed to save progress", "challenge", t.challenge.ID, "day", key, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		delete(t.pending, key)
	}
	return errors.Join(errs...)
}
