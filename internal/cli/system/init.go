package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/storage"
	"github.com/julianstephens/thirtyday/internal/storage/postgres"
	"github.com/julianstephens/thirtyday/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy challenges from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return errors.New("--force is only supported for sqlite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDB, errDB := filepath.Abs(dbPath)
			absSource, errSource := filepath.Abs(c.Source)
			if errDB == nil && errSource == nil && absDB == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized thirtyday storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if _, err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, cli.ErrEmbeddedCredentials
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	src, err := openSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	challenges, err := src.GetAllChallenges()
	if err != nil {
		return fmt.Errorf("failed to get challenges from source: %w", err)
	}
	records := 0
	for _, ch := range challenges {
		if err := ctx.Store.AddChallenge(ch); err != nil {
			return fmt.Errorf("failed to add challenge %s: %w", ch.ID, err)
		}
		progress, err := src.GetProgressForChallenge(ch.ID)
		if err != nil {
			return fmt.Errorf("failed to get progress for %s: %w", ch.ID, err)
		}
		for _, p := range progress {
			if err := ctx.Store.SaveProgress(p); err != nil {
				return fmt.Errorf("failed to save progress %s: %w", p.ID, err)
			}
		}
		records += len(progress)
	}
	ctx.Printf("  Copied %d challenges and %d progress records\n", len(challenges), records)
	return nil
}
