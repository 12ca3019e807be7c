package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
)

const progressColumns = "id, challenge_id, day, completion, created_at, updated_at"

func scanProgress(row rowScanner) (models.DailyProgress, error) {
	var p models.DailyProgress
	if err := row.Scan(&p.ID, &p.ChallengeID, &p.Day, &p.Completion, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.DailyProgress{}, err
	}
	return p, nil
}

func (s *Store) SaveProgress(p models.DailyProgress) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_progress (`+progressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (challenge_id, day) DO UPDATE SET
			completion = EXCLUDED.completion,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.ChallengeID, p.Day, p.Completion, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save progress for %s on %s: %w", p.ChallengeID, p.Day, err)
	}
	return nil
}

func (s *Store) GetProgress(challengeID, day string) (models.DailyProgress, error) {
	row := s.db.QueryRow("SELECT "+progressColumns+" FROM daily_progress WHERE challenge_id = $1 AND day = $2", challengeID, day)

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
	rows, err := s.db.Query("SELECT "+progressColumns+" FROM daily_progress WHERE challenge_id = $1 ORDER BY day", challengeID)
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
