package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/thirtyday/internal/auth"
	"github.com/julianstephens/thirtyday/internal/backup"
	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/config"
	"github.com/julianstephens/thirtyday/internal/keyring"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage"
	"github.com/julianstephens/thirtyday/internal/storage/postgres"
	"github.com/julianstephens/thirtyday/internal/storage/sqlite"
	"github.com/julianstephens/thirtyday/internal/utils"
)

var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use the OS keyring, " +
	config.EnvDBConnection + " or ~/.pgpass instead")

type Context struct {
	Store      storage.Provider
	Config     config.Config
	Challenges *challenge.Service
	Auth       *auth.Service
	Out        io.Writer
	// DataDir holds the instance lockfile.
	DataDir string
}

// NewContext wires the services over store. tokens persists the session token.
func NewContext(store storage.Provider, cfg config.Config, tokens auth.TokenStore) *Context {
	return &Context{
		Store:      store,
		Config:     cfg,
		Challenges: challenge.NewService(store),
		Auth:       auth.NewService(auth.NewClient(cfg.APIURL, tokens)),
		Out:        os.Stdout,
	}
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// OpenStore picks the storage backend. A PostgreSQL URI passed as --config wins,
// then THIRTYDAY_DB_CONNECTION, then a connection string in the OS keyring when
// --config was left at its default; otherwise --config is a sqlite file path.
func OpenStore(configFlag, defaultPath string, cfg config.Config) (storage.Provider, error) {
	if postgres.IsConnString(configFlag) {
		if _, err := postgres.ValidateConnString(configFlag); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
			return nil, err
		}
		return postgres.New(configFlag), nil
	}

	if cfg.DBConnection != "" {
		logger.Debug("Using database connection from environment")
		return postgres.New(cfg.DBConnection), nil
	}

	if configFlag == defaultPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using database connection from keyring")
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed, using sqlite", "error", err)
		}
	}

	return sqlite.NewStore(configFlag), nil
}

// DataDirFor returns the directory next to the sqlite file, or the directory of
// defaultPath for PostgreSQL.
func DataDirFor(store storage.Provider, defaultPath string) string {
	if s, ok := store.(*sqlite.Store); ok {
		return filepath.Dir(s.GetConfigPath())
	}
	return filepath.Dir(defaultPath)
}

// PerformAutomaticBackup creates a backup of the sqlite database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindChallenge resolves ref as a challenge ID, a unique ID prefix or a title (case-insensitive).
func (c *Context) FindChallenge(ref string) (models.Challenge, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Challenge{}, errors.New("challenge reference is empty")
	}

	if ch, err := c.Store.GetChallenge(ref); err == nil {
		return ch, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Challenge{}, err
	}

	all, err := c.Store.GetAllChallenges()
	if err != nil {
		return models.Challenge{}, err
	}
	var matches []models.Challenge
	for _, ch := range all {
		if strings.HasPrefix(ch.ID, ref) || strings.EqualFold(ch.Title, ref) {
			matches = append(matches, ch)
		}
	}

	switch len(matches) {
	case 0:
		return models.Challenge{}, fmt.Errorf("challenge %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Challenge{}, fmt.Errorf("%q matches %d challenges, use a longer ID", ref, len(matches))
	}
}

// Today returns the current calendar day in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	b, err := c.Challenges.Builder()
	if err != nil {
		return time.Time{}, err
	}
	return utils.InLocation(utils.StartOfDay(b.Now(), b.Location), time.UTC), nil
}

// ParseWeekday parses a weekday name, its three-letter abbreviation or a number (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	s = strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[s]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(s); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}
