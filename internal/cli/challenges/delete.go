package challenges

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/thirtyday/internal/cli"
)

type DeleteCmd struct {
	Challenge string `arg:"" help:"Challenge ID, ID prefix or title."`
	Yes       bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	ch, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Printf("Delete %s %s and all of its progress? [y/N]: ", ch.Emoji, ch.Title)
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Challenges.Delete(ch.ID); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	ctx.Printf("✓ Deleted %s\n", ch.Title)
	return nil
}
