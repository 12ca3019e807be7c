package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
)

const challengeColumns = "id, title, wish, daily_action, emoji, start_date, end_date, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner) (models.Challenge, error) {
	var c models.Challenge
	var startDate, endDate, createdAt, updatedAt string

	if err := row.Scan(&c.ID, &c.Title, &c.Wish, &c.DailyAction, &c.Emoji, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		return models.Challenge{}, err
	}

	var err error
	if c.StartDate, err = time.Parse(constants.DateFormat, startDate); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to parse start_date for challenge %s: %w", c.ID, err)
	}
	if c.EndDate, err = time.Parse(constants.DateFormat, endDate); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to parse end_date for challenge %s: %w", c.ID, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to parse created_at for challenge %s: %w", c.ID, err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to parse updated_at for challenge %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) AddChallenge(c models.Challenge) error {
	_, err := s.db.Exec(`
		INSERT INTO challenges (`+challengeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Wish, c.DailyAction, c.Emoji,
		c.StartDate.Format(constants.DateFormat),
		c.EndDate.Format(constants.DateFormat),
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add challenge: %w", err)
	}
	return nil
}

func (s *Store) GetChallenge(id string) (models.Challenge, error) {
	row := s.db.QueryRow("SELECT "+challengeColumns+" FROM challenges WHERE id = ?", id)

	c, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Challenge{}, fmt.Errorf("challenge %s: %w", id, storage.ErrNotFound)
		}
		return models.Challenge{}, err
	}
	return c, nil
}

func (s *Store) GetAllChallenges() ([]models.Challenge, error) {
	rows, err := s.db.Query("SELECT " + challengeColumns + " FROM challenges ORDER BY start_date, created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []models.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *Store) UpdateChallenge(c models.Challenge) error {
	res, err := s.db.Exec(`
		UPDATE challenges
		SET title = ?, wish = ?, daily_action = ?, emoji = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Wish, c.DailyAction, c.Emoji,
		c.StartDate.Format(constants.DateFormat),
		c.EndDate.Format(constants.DateFormat),
		c.UpdatedAt.UTC().Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("challenge %s: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteChallenge(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily_progress WHERE challenge_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete progress for challenge %s: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM challenges WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("challenge %s: %w", id, storage.ErrNotFound)
	}

	return tx.Commit()
}
