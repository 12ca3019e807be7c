package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/lock"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release instance lock", "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Challenges, ctx.Auth), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if err := m.Flush(); err != nil {
			return fmt.Errorf("some progress could not be saved: %w", err)
		}
	}
	return nil
}
