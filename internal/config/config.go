// Package config resolves runtime settings from flags, the environment and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/thirtyday/internal/constants"
)

const (
	EnvAPIURL       = "THIRTYDAY_API_URL"
	EnvDBConnection = "THIRTYDAY_DB_CONNECTION"
	EnvDebug        = "THIRTYDAY_DEBUG"
)

// Config is the resolved runtime configuration. Flag values win over the environment.
type Config struct {
	APIURL       string
	DBConnection string
	Debug        bool
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are ignored; variables already set are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Resolve merges explicit flag values with environment fallbacks and defaults.
func Resolve(apiURL string, debug bool) Config {
	cfg := Config{
		APIURL:       strings.TrimSpace(apiURL),
		DBConnection: strings.TrimSpace(os.Getenv(EnvDBConnection)),
		Debug:        debug,
	}

	if cfg.APIURL == "" {
		cfg.APIURL = strings.TrimSpace(os.Getenv(EnvAPIURL))
	}
	if cfg.APIURL == "" {
		cfg.APIURL = constants.DefaultAPIBaseURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if !cfg.Debug {
		if v, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil {
			cfg.Debug = v
		}
	}

	return cfg
}
