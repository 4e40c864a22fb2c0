package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	EnvDefaultVenue = "TMS_DEFAULT_VENUE"
	EnvLogLevel     = "TMS_LOG_LEVEL"
	EnvNoAltScreen  = "TMS_NO_ALT_SCREEN"

	DefaultVenuePath = "assets/venue_default.txt"
	DefaultLogLevel  = "info"
)

type Config struct {
	DefaultVenue string
	LogLevel     string
	NoAltScreen  bool
}

// Load reads envFile, if it exists, into the process environment without
// overriding variables that are already set, then builds a Config from it.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return Config{
		DefaultVenue: envStr(EnvDefaultVenue, DefaultVenuePath),
		LogLevel:     envStr(EnvLogLevel, DefaultLogLevel),
		NoAltScreen:  envBool(EnvNoAltScreen, false),
	}, nil
}

// Level parses LogLevel. An unknown level yields info and ok false.
func (c Config) Level() (level log.Level, ok bool) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return log.InfoLevel, false
	}
	return level, true
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}
