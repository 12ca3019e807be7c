package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/cli/account"
	"github.com/julianstephens/thirtyday/internal/cli/backups"
	"github.com/julianstephens/thirtyday/internal/cli/challenges"
	"github.com/julianstephens/thirtyday/internal/cli/settings"
	"github.com/julianstephens/thirtyday/internal/cli/system"
	"github.com/julianstephens/thirtyday/internal/config"
	"github.com/julianstephens/thirtyday/internal/constants"
	apperrors "github.com/julianstephens/thirtyday/internal/errors"
	"github.com/julianstephens/thirtyday/internal/keyring"
	"github.com/julianstephens/thirtyday/internal/logger"
)

const defaultConfig = "~/.config/thirtyday/thirtyday.db"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use THIRTYDAY_DB_CONNECTION, .pgpass, or the OS keyring instead." type:"string" default:"~/.config/thirtyday/thirtyday.db"`
	Debug   bool   `help:"Log debug output to stderr."`
	APIURL  string `name:"api-url" help:"Base URL of the auth service."`

	Init      system.InitCmd      `cmd:"" help:"Initialize thirtyday storage."`
	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Challenge struct {
		Add    challenges.AddCmd    `cmd:"" help:"Start a new challenge."`
		Edit   challenges.EditCmd   `cmd:"" help:"Edit an existing challenge."`
		List   challenges.ListCmd   `cmd:"" help:"List all challenges."`
		Show   challenges.ShowCmd   `cmd:"" help:"Show the calendar grid of a challenge."`
		Delete challenges.DeleteCmd `cmd:"" help:"Delete a challenge and its progress."`
		Toggle challenges.ToggleCmd `cmd:"" help:"Toggle completion of a day."`
	} `cmd:"" help:"Manage challenges."`
	Auth struct {
		SignIn  account.SignInCmd  `cmd:"" name:"signin" help:"Sign in to your account."`
		SignUp  account.SignUpCmd  `cmd:"" name:"signup" help:"Create an account."`
		SignOut account.SignOutCmd `cmd:"" name:"signout" help:"Sign out and forget the session token."`
		Status  account.StatusCmd  `cmd:"" help:"Show the signed-in user."`
	} `cmd:"" help:"Manage your account session."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with its password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	DevServer system.DevServerCmd  `cmd:"" name:"devserver" hidden:"" help:"Run a local auth server for development."`
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// needsStore reports whether the selected command works on a loaded database.
func needsStore(command string) bool {
	for _, prefix := range []string{"init", "keyring", "devserver"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("30-day challenge tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := config.LoadDotEnv(); err != nil {
		apperrors.Fatal(err)
	}
	cfg := config.Resolve(CLI.APIURL, CLI.Debug)

	defaultPath := expandHome(defaultConfig)
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(defaultPath)}); err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenStore(expandHome(CLI.Config), defaultPath, cfg)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg, keyring.NewTokenStore())
	appCtx.DataDir = cli.DataDirFor(store, defaultPath)

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
