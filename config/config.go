// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blogspace/app/repositories"
	"blogspace/app/storage"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BLOGSPACE_STORAGE_DRIVER.
const EnvPrefix = "BLOGSPACE"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Log     LogConfig     `mapstructure:"log"`
	Backup  BackupConfig  `mapstructure:"backup"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Path          string `mapstructure:"path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
	CorruptPolicy string `mapstructure:"corrupt_policy"`
}

type FeedConfig struct {
	PageSize int           `mapstructure:"page_size"`
	Latency  time.Duration `mapstructure:"latency"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.driver", storage.DriverBadger)
	v.SetDefault("storage.path", "data/badger")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_prefix", "blogspace:")
	v.SetDefault("storage.corrupt_policy", "fail")
	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.latency", time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("backup.dir", "data/backups")
}

// Load reads configuration from path, or from blogspace.yaml in the working
// directory when path is empty, then applies environment overrides. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("blogspace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}

	switch c.Storage.Driver {
	case storage.DriverBadger:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the badger driver")
		}
	case storage.DriverRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("storage.redis_addr is required for the redis driver")
		}
	case storage.DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if _, err := repositories.ParseDecodePolicy(c.Storage.CorruptPolicy); err != nil {
		return err
	}
	if c.Feed.PageSize < 1 {
		return errors.New("feed.page_size must be positive")
	}
	if c.Feed.Latency < 0 {
		return errors.New("feed.latency cannot be negative")
	}
	return nil
}

// DecodePolicy returns the parsed storage.corrupt_policy.
func (c *Config) DecodePolicy() repositories.DecodePolicy {
	policy, _ := repositories.ParseDecodePolicy(c.Storage.CorruptPolicy)
	return policy
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:      c.Storage.Driver,
		Path:        c.Storage.Path,
		RedisAddr:   c.Storage.RedisAddr,
		RedisPrefix: c.Storage.RedisPrefix,
	}
}
