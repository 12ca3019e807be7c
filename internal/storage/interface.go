package storage

import (
	"errors"

	"github.com/julianstephens/thirtyday/internal/models"
)

// ErrNotFound is returned when a challenge or progress record does not exist.
var ErrNotFound = errors.New("not found")

type Settings = models.Settings

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Challenges
	AddChallenge(models.Challenge) error
	GetChallenge(id string) (models.Challenge, error)
	GetAllChallenges() ([]models.Challenge, error)
	UpdateChallenge(models.Challenge) error
	// DeleteChallenge removes the challenge and every progress record that
	// belongs to it in a single transaction.
	DeleteChallenge(id string) error

	// Daily progress
	// SaveProgress inserts the record or, when one already exists for the
	// same challenge and day, updates its completion in place.
	SaveProgress(models.DailyProgress) error
	GetProgress(challengeID, day string) (models.DailyProgress, error)
	GetProgressForChallenge(challengeID string) ([]models.DailyProgress, error)

	// Utils
	GetConfigPath() string
}
