package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/models"
)

type ChallengeFormModel struct {
	Title       string
	Wish        string
	DailyAction string
	Emoji       string
	StartDate   string
	EndDate     string
}

type SignInFormModel struct {
	Email      string
	Password   string
	RememberMe bool
}

func challengeFormFrom(c models.Challenge) *ChallengeFormModel {
	return &ChallengeFormModel{
		Title:       c.Title,
		Wish:        c.Wish,
		DailyAction: c.DailyAction,
		Emoji:       c.Emoji,
		StartDate:   c.StartDate.Format(constants.DateFormat),
		EndDate:     c.EndDate.Format(constants.DateFormat),
	}
}

// Input converts the form fields. An empty end date is left for the service to default.
func (f *ChallengeFormModel) Input() (challenge.Input, error) {
	start, err := challenge.ParseDate(f.StartDate)
	if err != nil {
		return challenge.Input{}, err
	}
	in := challenge.Input{
		Title:       f.Title,
		Wish:        f.Wish,
		DailyAction: f.DailyAction,
		Emoji:       f.Emoji,
		StartDate:   start,
	}
	if strings.TrimSpace(f.EndDate) != "" {
		end, err := challenge.ParseDate(f.EndDate)
		if err != nil {
			return challenge.Input{}, err
		}
		in.EndDate = &end
	}
	return in, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validDate(optional bool) func(string) error {
	return func(s string) error {
		if optional && strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := challenge.ParseDate(s)
		return err
	}
}

func newChallengeForm(f *ChallengeFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Title").
				Value(&f.Title).
				Validate(required("title")),
			huh.NewInput().
				Title("Wish").
				Description("What do you want to get out of it?").
				Value(&f.Wish).
				Validate(required("wish")),
			huh.NewInput().
				Title("Daily action").
				Value(&f.DailyAction).
				Validate(required("daily action")),
			huh.NewInput().
				Title("Emoji").
				Description("Leave empty for " + constants.DefaultEmoji).
				Value(&f.Emoji),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Value(&f.StartDate).
				Validate(validDate(false)),
			huh.NewInput().
				Title("End date").
				Description("Leave empty for the default length").
				Placeholder("YYYY-MM-DD").
				Value(&f.EndDate).
				Validate(validDate(true)),
		),
	)
}

func newSignInForm(f *SignInFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&f.Email).
				Validate(required("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password).
				Validate(required("password")),
			huh.NewConfirm().
				Title("Remember me?").
				Value(&f.RememberMe),
		),
	)
}
