package models

import "time"

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Wish        string    `json:"wish"`
	DailyAction string    `json:"daily_action"`
	Emoji       string    `json:"emoji"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DailyProgress records whether the daily action of a challenge was done on a given day.
// At most one record exists per (ChallengeID, Day).
type DailyProgress struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	Day         string    `json:"day"` // YYYY-MM-DD format
	Completion  bool      `json:"completion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
