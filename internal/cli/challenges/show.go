package challenges

import (
	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/tui/components/grid"
)

type ShowCmd struct {
	Challenge string `arg:"" help:"Challenge ID, ID prefix or title."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}
	tracker, err := ctx.Challenges.Open(ch.ID)
	if err != nil {
		return err
	}
	b, err := ctx.Challenges.Builder()
	if err != nil {
		return err
	}

	s := tracker.Summary()
	ctx.Printf("%s %s (%s)\n", ch.Emoji, ch.Title, shortID(ch.ID))
	ctx.Printf("Wish:         %s\n", ch.Wish)
	ctx.Printf("Daily action: %s\n", ch.DailyAction)
	ctx.Printf("Dates:        %s → %s\n\n", formatDate(ch.StartDate), formatDate(ch.EndDate))
	ctx.Printf("%s\n", grid.RenderText(tracker.Grid(), b.WeekStart))
	ctx.Printf("%d/%d days done (%d%%), current streak %d, best %d\n",
		s.Completed, s.TotalDays, s.Percent(), s.CurrentStreak, s.LongestStreak)
	return nil
}
