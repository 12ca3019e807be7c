package calendar

import (
	"time"

	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// ProgressIndex maps a calendar day key (YYYY-MM-DD) to the progress record for that day.
// Records are shared by pointer so that flipping a Day's progress updates the index too.
type ProgressIndex map[string]*models.DailyProgress

// NewProgressIndex indexes records by their Day. When two records share a day the first one wins.
func NewProgressIndex(records []models.DailyProgress) ProgressIndex {
	idx := make(ProgressIndex, len(records))
	for i := range records {
		if _, exists := idx[records[i].Day]; exists {
			continue
		}
		idx[records[i].Day] = &records[i]
	}
	return idx
}

// Lookup returns the record for the calendar day of t in loc, or nil.
func (p ProgressIndex) Lookup(t time.Time, loc *time.Location) *models.DailyProgress {
	if p == nil {
		return nil
	}
	return p[utils.DayKey(t, loc)]
}

// IsComplete reports whether the calendar day of t has a completed record.
func (p ProgressIndex) IsComplete(t time.Time, loc *time.Location) bool {
	rec := p.Lookup(t, loc)
	return rec != nil && rec.Completion
}

// Records returns the indexed records in no particular order.
func (p ProgressIndex) Records() []*models.DailyProgress {
	out := make([]*models.DailyProgress, 0, len(p))
	for _, rec := range p {
		out = append(out, rec)
	}
	return out
}
