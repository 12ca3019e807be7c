package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
)

const progressColumns = "id, challenge_id, day, completion, created_at, updated_at"

func scanProgress(row rowScanner) (models.DailyProgress, error) {
	var p models.DailyProgress
	var completion int
	var createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.ChallengeID, &p.Day, &completion, &createdAt, &updatedAt); err != nil {
		return models.DailyProgress{}, err
	}
	p.Completion = completion != 0

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to parse created_at for progress %s: %w", p.ID, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to parse updated_at for progress %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *Store) SaveProgress(p models.DailyProgress) error {
	completion := 0
	if p.Completion {
		completion = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO daily_progress (`+progressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(challenge_id, day) DO UPDATE SET
			completion = excluded.completion,
			updated_at = excluded.updated_at`,
		p.ID, p.ChallengeID, p.Day, completion,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save progress for %s on %s: %w", p.ChallengeID, p.Day, err)
	}
	return nil
}

func (s *Store) GetProgress(challengeID, day string) (models.DailyProgress, error) {
	row := s.db.QueryRow("SELECT "+progressColumns+" FROM daily_progress WHERE challenge_id = ? AND day = ?", challengeID, day)

	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyProgress{}, fmt.Errorf("progress %s/%s: %w", challengeID, day, storage.ErrNotFound)
		}
		return models.DailyProgress{}, err
	}
	return p, nil
}

func (s *Store) GetProgressForChallenge(challengeID string) ([]models.DailyProgress, error) {
	rows, err := s.db.Query("SELECT "+progressColumns+" FROM daily_progress WHERE challenge_id = ? ORDER BY day", challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DailyProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
