package challenges

import (
	"fmt"
	"time"

	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/utils"
)

type ToggleCmd struct {
	Challenge string `arg:"" help:"Challenge ID, ID prefix or title."`
	Date      string `help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	var day time.Time
	if c.Date == "" {
		day, err = ctx.Today()
	} else {
		day, err = challenge.ParseDate(c.Date)
	}
	if err != nil {
		return err
	}

	b, err := ctx.Challenges.Builder()
	if err != nil {
		return err
	}
	tracker, err := ctx.Challenges.Open(ch.ID)
	if err != nil {
		return err
	}

	day = utils.InLocation(day, b.Location)
	if !tracker.ToggleDate(day) {
		return fmt.Errorf("%s is outside %s or still ahead", formatDate(day), ch.Title)
	}
	if err := tracker.Flush(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	done := false
	if rec, err := ctx.Store.GetProgress(ch.ID, formatDate(day)); err == nil {
		done = rec.Completion
	}
	mark := "not done"
	if done {
		mark = "done"
	}
	ctx.Printf("✓ %s %s on %s: %s\n", ch.Emoji, ch.Title, formatDate(day), mark)
	return nil
}
