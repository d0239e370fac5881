// Package config loads runtime settings from defaults, an optional
// logistics.yaml, LOGISTICS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
	StorageMemory   = "memory"
)

// EnvPrefix prefixes every environment variable, e.g. LOGISTICS_STORAGE_DSN.
const EnvPrefix = "LOGISTICS"

type Config struct {
	Addr    string  `mapstructure:"addr"`
	Log     Log     `mapstructure:"log"`
	Storage Storage `mapstructure:"storage"`
	Session Session `mapstructure:"session"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type Storage struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	S3     S3     `mapstructure:"s3"`
}

type S3 struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path_style"`
}

type Session struct {
	// Secret signs session tokens. Empty means a secret generated on first
	// run and kept in the store.
	Secret       string `mapstructure:"secret"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.dsn", "logistics.sqlite3")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_secure", false)
}

// Load reads the configuration into a Config. Flags must already be bound
// to v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	v.SetConfigName("logistics")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/logistics")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the selected storage driver has what it needs.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageSQLite, StoragePostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: storage.dsn required for %s storage", c.Storage.Driver)
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("config: storage.s3.bucket required for s3 storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
