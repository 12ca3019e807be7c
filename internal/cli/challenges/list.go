package challenges

import (
	"fmt"
	"time"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/constants"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func formatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Challenges.List()
	if err != nil {
		return fmt.Errorf("failed to list challenges: %w", err)
	}
	if len(all) == 0 {
		ctx.Println("No challenges yet. Add one with 'thirtyday challenge add'.")
		return nil
	}

	for _, ch := range all {
		tracker, err := ctx.Challenges.Open(ch.ID)
		if err != nil {
			return err
		}
		s := tracker.Summary()
		ctx.Printf("%s  %s %-24s %s → %s  %2d/%-2d done  streak %d\n",
			shortID(ch.ID), ch.Emoji, ch.Title,
			formatDate(ch.StartDate), formatDate(ch.EndDate),
			s.Completed, s.TotalDays, s.CurrentStreak)
	}
	return nil
}
