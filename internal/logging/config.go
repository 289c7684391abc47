// Package logging configures the process wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel  = "HOUDINIMCP_LOG_LEVEL"
	EnvLogFormat = "HOUDINIMCP_LOG_FORMAT"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config represents logger settings
type Config struct {
	Level  string `yaml:"level" json:"level" toml:"level"`
	Format string `yaml:"format" json:"format" toml:"format"` // json or console
}

var configureOnce sync.Once

// ConfigureRuntime configures logging for binaries, output always goes to stderr
func ConfigureRuntime(cfg *Config) {
	Configure(ProfileRuntime, cfg, os.Stderr)
}

// ConfigureTests configures verbose console logging
func ConfigureTests() {
	Configure(ProfileTest, nil, os.Stderr)
}

// Configure applies profile defaults, cfg and env overrides; only the first call wins
func Configure(profile Profile, cfg *Config, w io.Writer) {
	configureOnce.Do(func() {
		level, format := defaults(profile)
		if cfg != nil {
			if lvl, ok := parseLevel(cfg.Level); ok {
				level = lvl
			}
			if cfg.Format != "" {
				format = cfg.Format
			}
		}
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}
		if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
			format = v
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339Nano
		if strings.EqualFold(format, "console") {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: profile == ProfileTest}
		}
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	})
}

// Logger returns a component scoped logger derived from the global one
func Logger(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

func defaults(profile Profile) (zerolog.Level, string) {
	switch profile {
	case ProfileTest:
		return zerolog.DebugLevel, "console"
	default:
		return zerolog.InfoLevel, "json"
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
