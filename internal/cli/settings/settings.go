package settings

import (
	"fmt"

	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WeekStart     *string `help:"First day of the calendar week (e.g. sunday, mon, 1)."`
	Timezone      *string `help:"IANA timezone used to decide what today is."`
	DefaultEmoji  *string `help:"Emoji given to challenges created without one."`
	DefaultLength *int    `help:"Length in days of challenges created without an end date."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Week Start:      %s\n", settings.WeekStart)
		ctx.Printf("  Timezone:        %s\n", settings.Timezone)
		ctx.Printf("  Default Emoji:   %s\n", settings.DefaultEmoji)
		ctx.Printf("  Default Length:  %d days\n", settings.DefaultLengthDays)
		return nil
	}

	updated := false
	if c.WeekStart != nil {
		wd, err := cli.ParseWeekday(*c.WeekStart)
		if err != nil {
			return err
		}
		settings.WeekStart = wd
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultEmoji != nil {
		emoji := challenge.NormalizeEmoji(*c.DefaultEmoji, "")
		if emoji == "" {
			return fmt.Errorf("not an emoji: %q", *c.DefaultEmoji)
		}
		settings.DefaultEmoji = emoji
		updated = true
	}
	if c.DefaultLength != nil {
		if *c.DefaultLength < 1 || *c.DefaultLength > constants.MaxGridDays {
			return fmt.Errorf("default length must be between 1 and %d days", constants.MaxGridDays)
		}
		settings.DefaultLengthDays = *c.DefaultLength
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
