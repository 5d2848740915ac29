package config_test

import (
	"log/slog"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/cobra"

	"github.com/mmynk/rentkeeper/internal/config"
)

// clearEnv blanks every variable Load reads. Empty variables count as unset.
func clearEnv(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "SECRET_KEY", "LOG_LEVEL", "SESSION_TTL", "COOKIE_SECURE", "BCRYPT_COST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)

	cfg, err := config.Load(config.New())
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Addr, qt.Equals, ":8080")
	c.Assert(cfg.DBPath, qt.Equals, "./data/rental.db")
	c.Assert(cfg.SecretKey, qt.Equals, config.DevSecretKey)
	c.Assert(cfg.DevSecret, qt.IsTrue)
	c.Assert(cfg.LogLevel, qt.Equals, slog.LevelInfo)
	c.Assert(cfg.SessionTTL, qt.Equals, 24*time.Hour)
	c.Assert(cfg.CookieSecure, qt.IsFalse)
	c.Assert(cfg.BcryptCost, qt.Equals, 0)
}

func TestLoadFromEnv(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv("ADDR", "127.0.0.1:9000")
	t.Setenv("DB_PATH", "/tmp/r.db")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := config.Load(config.New())
	c.Assert(err, qt.IsNil)

	c.Assert(cfg, qt.DeepEquals, &config.Config{
		Addr:         "127.0.0.1:9000",
		DBPath:       "/tmp/r.db",
		SecretKey:    "s3cret",
		LogLevel:     slog.LevelDebug,
		SessionTTL:   2 * time.Hour,
		CookieSecure: true,
		BcryptCost:   12,
	})
}

func TestFlagsOverrideEnv(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv("DB_PATH", "/from/env.db")

	v := config.New()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	c.Assert(config.RegisterFlags(cmd, v), qt.IsNil)
	c.Assert(cmd.ParseFlags([]string{"--db-path", "/from/flag.db", "--session-ttl", "30m"}), qt.IsNil)

	cfg, err := config.Load(v)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DBPath, qt.Equals, "/from/flag.db")
	c.Assert(cfg.SessionTTL, qt.Equals, 30*time.Minute)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		err  string
	}{
		{
			name: "unknown log level",
			env:  map[string]string{"LOG_LEVEL": "loud"},
			err:  `unknown log level "loud"`,
		},
		{
			name: "zero session ttl",
			env:  map[string]string{"SESSION_TTL": "0s"},
			err:  `session_ttl must be a positive duration.*`,
		},
		{
			name: "bcrypt cost too low",
			env:  map[string]string{"BCRYPT_COST": "2"},
			err:  `bcrypt_cost must be 0 or between 4 and 31, got 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(config.New())
			c.Assert(err, qt.ErrorMatches, tt.err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := qt.New(t)
			got, err := config.ParseLevel(tt.in)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}
