// Package config loads server settings from flags and the environment.
//
// Every key can be set with an upper-case environment variable of the same
// name (DB_PATH, SECRET_KEY, ...) or a command-line flag (--db-path,
// --secret-key, ...). Flags win over the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DevSecretKey signs sessions when no SECRET_KEY is configured.
const DevSecretKey = "dev-secret-please-change"

const (
	keyAddr         = "addr"
	keyDBPath       = "db_path"
	keySecretKey    = "secret_key"
	keyLogLevel     = "log_level"
	keySessionTTL   = "session_ttl"
	keyCookieSecure = "cookie_secure"
	keyBcryptCost   = "bcrypt_cost"
)

// Config holds the resolved settings.
type Config struct {
	Addr         string
	DBPath       string
	SecretKey    string
	LogLevel     slog.Level
	SessionTTL   time.Duration
	CookieSecure bool
	BcryptCost   int

	// DevSecret is set when SecretKey fell back to DevSecretKey.
	DevSecret bool
}

// New returns a viper instance with defaults and environment lookup.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyDBPath, "./data/rental.db")
	v.SetDefault(keySecretKey, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keySessionTTL, 24*time.Hour)
	v.SetDefault(keyCookieSecure, false)
	v.SetDefault(keyBcryptCost, 0)
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds persistent flags for every key to cmd and binds them to v.
func RegisterFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("db-path", "./data/rental.db", "SQLite database file")
	flags.String("secret-key", "", "key used to sign session tokens")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Duration("session-ttl", 24*time.Hour, "lifetime of a login session")
	flags.Bool("cookie-secure", false, "mark the session cookie Secure")
	flags.Int("bcrypt-cost", 0, "bcrypt cost for new password hashes (0 uses the library default)")

	for _, key := range []string{keyAddr, keyDBPath, keySecretKey, keyLogLevel, keySessionTTL, keyCookieSecure, keyBcryptCost} {
		name := strings.ReplaceAll(key, "_", "-")
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	level, err := ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:         v.GetString(keyAddr),
		DBPath:       v.GetString(keyDBPath),
		SecretKey:    v.GetString(keySecretKey),
		LogLevel:     level,
		SessionTTL:   v.GetDuration(keySessionTTL),
		CookieSecure: v.GetBool(keyCookieSecure),
		BcryptCost:   v.GetInt(keyBcryptCost),
	}

	if cfg.SecretKey == "" {
		cfg.SecretKey = DevSecretKey
		cfg.DevSecret = true
	}
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session_ttl must be a positive duration, got %q", v.GetString(keySessionTTL))
	}
	if cfg.BcryptCost != 0 && (cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost) {
		return nil, fmt.Errorf("bcrypt_cost must be 0 or between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	return cfg, nil
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
