package challenge

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/thirtyday/internal/calendar"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
	"github.com/julianstephens/thirtyday/internal/utils"
)

// Service creates, edits and removes challenges and opens trackers over their progress.
type Service struct {
	store storage.Provider
	Now   func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) settings() models.Settings {
	settings, err := s.store.GetSettings()
	if err != nil {
		logger.Warn("Falling back to default settings", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// Create validates in and stores a new challenge.
func (s *Service) Create(in Input) (models.Challenge, error) {
	settings := s.settings()
	in = in.Normalize(settings.DefaultEmoji, settings.DefaultLengthDays)
	if err := in.Validate(); err != nil {
		return models.Challenge{}, err
	}

	now := s.now()
	c := models.Challenge{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Wish:        in.Wish,
		DailyAction: in.DailyAction,
		Emoji:       in.Emoji,
		StartDate:   in.StartDate,
		EndDate:     *in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.AddChallenge(c); err != nil {
		return models.Challenge{}, err
	}
	logger.Info("Challenge created", "id", c.ID, "title", c.Title)
	return c, nil
}

// Edit replaces the editable fields of an existing challenge. Progress is kept as is.
func (s *Service) Edit(id string, in Input) (models.Challenge, error) {
	c, err := s.store.GetChallenge(id)
	if err != nil {
		return models.Challenge{}, err
	}

	settings := s.settings()
	in = in.Normalize(settings.DefaultEmoji, settings.DefaultLengthDays)
	if err := in.Validate(); err != nil {
		return models.Challenge{}, err
	}

	c.Title = in.Title
	c.Wish = in.Wish
	c.DailyAction = in.DailyAction
	c.Emoji = in.Emoji
	c.StartDate = in.StartDate
	c.EndDate = *in.EndDate
	c.UpdatedAt = s.now()

	if err := s.store.UpdateChallenge(c); err != nil {
		return models.Challenge{}, err
	}
	logger.Info("Challenge updated", "id", c.ID)
	return c, nil
}

// InputFrom returns the editable fields of c, for prefilling edit forms.
func InputFrom(c models.Challenge) Input {
	end := c.EndDate
	return Input{
		Title:       c.Title,
		Wish:        c.Wish,
		DailyAction: c.DailyAction,
		Emoji:       c.Emoji,
		StartDate:   c.StartDate,
		EndDate:     &end,
	}
}

// Delete removes the challenge together with all of its progress.
func (s *Service) Delete(id string) error {
	if err := s.store.DeleteChallenge(id); err != nil {
		return err
	}
	logger.Info("Challenge deleted", "id", id)
	return nil
}

func (s *Service) Get(id string) (models.Challenge, error) {
	return s.store.GetChallenge(id)
}

func (s *Service) List() ([]models.Challenge, error) {
	return s.store.GetAllChallenges()
}

// Builder returns a grid builder configured from the stored settings.
func (s *Service) Builder() (*calendar.Builder, error) {
	settings := s.settings()
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	b := calendar.NewBuilder(loc, settings.WeekStart)
	b.Now = s.now
	return b, nil
}

// Open loads a challenge and its progress into a Tracker.
func (s *Service) Open(id string) (*Tracker, error) {
	c, err := s.store.GetChallenge(id)
	if err != nil {
		return nil, err
	}

	records, err := s.store.GetProgressForChallenge(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %s: %w", id, err)
	}

	b, err := s.Builder()
	if err != nil {
		return nil, err
	}

	return NewTracker(s.store, b, c, records), nil
}
