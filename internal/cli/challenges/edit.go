package challenges

import (
	"fmt"

	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/cli"
)

type EditCmd struct {
	Challenge string  `arg:"" help:"Challenge ID, ID prefix or title."`
	Title     *string `help:"New title."`
	Wish      *string `help:"New wish."`
	Action    *string `help:"New daily action."`
	Emoji     *string `help:"New emoji."`
	Start     *string `help:"New start date (YYYY-MM-DD)."`
	End       *string `help:"New end date (YYYY-MM-DD)."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	in := challenge.InputFrom(existing)
	updated := false
	if c.Title != nil {
		in.Title = *c.Title
		updated = true
	}
	if c.Wish != nil {
		in.Wish = *c.Wish
		updated = true
	}
	if c.Action != nil {
		in.DailyAction = *c.Action
		updated = true
	}
	if c.Emoji != nil {
		in.Emoji = *c.Emoji
		updated = true
	}
	if c.Start != nil {
		if in.StartDate, err = challenge.ParseDate(*c.Start); err != nil {
			return err
		}
		updated = true
	}
	if c.End != nil {
		end, err := challenge.ParseDate(*c.End)
		if err != nil {
			return err
		}
		in.EndDate = &end
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}

	saved, err := ctx.Challenges.Edit(existing.ID, in)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	ctx.Printf("✓ Updated %s %s\n", saved.Emoji, saved.Title)
	return nil
}
