package challenges

import (
	"fmt"

	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/cli"
)

type AddCmd struct {
	Title  string `arg:"" help:"Challenge title."`
	Wish   string `help:"What you hope to get out of the challenge." required:""`
	Action string `help:"The action to do every day." required:""`
	Emoji  string `help:"Emoji shown with the challenge."`
	Start  string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	End    string `help:"End date (YYYY-MM-DD). Defaults to the configured challenge length."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	in := challenge.Input{
		Title:       c.Title,
		Wish:        c.Wish,
		DailyAction: c.Action,
		Emoji:       c.Emoji,
	}

	var err error
	if c.Start == "" {
		in.StartDate, err = ctx.Today()
	} else {
		in.StartDate, err = challenge.ParseDate(c.Start)
	}
	if err != nil {
		return err
	}
	if c.End != "" {
		end, err := challenge.ParseDate(c.End)
		if err != nil {
			return err
		}
		in.EndDate = &end
	}

	created, err := ctx.Challenges.Create(in)
	if err != nil {
		return fmt.Errorf("failed to add challenge: %w", err)
	}

	ctx.Printf("✓ Added %s %s (%s)\n", created.Emoji, created.Title, shortID(created.ID))
	ctx.Printf("  %s → %s\n", formatDate(created.StartDate), formatDate(created.EndDate))
	return nil
}
