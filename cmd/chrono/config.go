package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from the environment; root flags override it.
type Config struct {
	DB       string `env:"CHRONO_DB" env-default:"chrono.db" env-description:"SQLite database path"`
	Calendar string `env:"CHRONO_CALENDAR" env-default:"ISO" env-description:"calendar system: ISO, Gregorian, Julian, GJ or Buddhist"`
	Zone     string `env:"CHRONO_ZONE" env-default:"UTC" env-description:"zone ID: UTC, an IANA name or a fixed offset such as +05:30"`
	Debug    bool   `env:"CHRONO_DEBUG" env-default:"false" env-description:"log debug output to stderr"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse configuration from environment: %w", err)
	}
	return cfg, nil
}

// configUsage lists the environment variables for the help text.
func configUsage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// newLogger returns a text logger without timestamps or levels.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
