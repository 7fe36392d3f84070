// Package config loads the dropdeck configuration from a YAML file and
// DROPDECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/dropdeck/schedule"
	"github.com/etnz/dropdeck/store"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding the configuration,
// e.g. DROPDECK_STORE_BACKEND=redis sets store.backend.
const EnvPrefix = "DROPDECK"

// FileName is the name of the configuration file looked up when none is given.
const FileName = "dropdeck"

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	File   string `mapstructure:"file"`   // rotated log file, stderr when empty
	// rotation of File
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

type ResetConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	Store store.Config `mapstructure:"store"`
	Log   LogConfig    `mapstructure:"log"`
	Reset ResetConfig  `mapstructure:"reset"`
}

// DefaultDir is the default directory of the file store: dropdeck in the
// user configuration directory, or .dropdeck when there is none.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".dropdeck"
	}
	return filepath.Join(dir, "dropdeck")
}

func setDefaults(v *viper.Viper) {
	dir := DefaultDir()
	v.SetDefault("store.backend", store.File)
	v.SetDefault("store.dir", dir)
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.redis_prefix", store.DefaultRedisPrefix)
	v.SetDefault("store.sqlite_path", filepath.Join(dir, "dropdeck.db"))
	v.SetDefault("store.azure_connection_string", "")
	v.SetDefault("store.azure_table", "dropdeck")

	v.SetDefault("log.level", "warning")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("reset.interval", schedule.DefaultInterval)
}

// Load reads the configuration.
//
// If path is empty, dropdeck.yaml is looked up in the current directory and
// then in DefaultDir, and it is fine if there is none. Otherwise the file at
// path must exist. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path == "" {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDir())
	} else {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values that cannot be checked later on.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.Memory, store.File, store.Redis, store.SQLite, store.AzTables:
	default:
		return fmt.Errorf("invalid store.backend %q", c.Store.Backend)
	}
	if c.Reset.Interval <= 0 {
		return fmt.Errorf("invalid reset.interval %v: must be positive", c.Reset.Interval)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q want text or json", c.Log.Format)
	}
	return nil
}
