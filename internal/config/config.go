// Package config loads pipreq settings from defaults, an optional TOML
// file and PIPREQ_* environment variables, in increasing precedence.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
)

const (
	// AppName is the application name used for directories and env vars.
	AppName = "pipreq"
	// FileName is the config file name looked up in the config directory.
	FileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete settings tree.
type Config struct {
	Cache CacheConfig `mapstructure:"cache"`
	Redis RedisConfig `mapstructure:"redis"`
	Mongo MongoConfig `mapstructure:"mongo"`
	API   APIConfig   `mapstructure:"api"`
	PyPI  PyPIConfig  `mapstructure:"pypi"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // file, redis or none
	Dir     string        `mapstructure:"dir"`     // FileCache directory; empty means the XDG cache dir
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"` // empty: results are kept in memory
	Database string `mapstructure:"database"`
}

type APIConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type PyPIConfig struct {
	URL string `mapstructure:"url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Cache: CacheConfig{Backend: BackendFile, TTL: 24 * time.Hour},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{Database: AppName},
		API:   APIConfig{Addr: ":8080", ReadTimeout: 15 * time.Second, WriteTimeout: 30 * time.Second},
		PyPI:  PyPIConfig{URL: "https://pypi.org/pypi"},
	}
}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	File string // Explicit config file; must exist when set
	Dir  string // Config directory override (default: Dir())
}

// Dir returns $XDG_CONFIG_HOME/pipreq, falling back to ~/.config/pipreq.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load resolves the configuration. It returns the config file that was
// used, or "" when only defaults and environment applied.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolveFile(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

// Validate checks values that cannot be expressed through types.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl: must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New("redis.addr: required for the redis cache backend")
	}
	if err := pkgerrors.ValidateURL(c.PyPI.URL); err != nil {
		return fmt.Errorf("pypi.url: %w", err)
	}
	return nil
}

func resolveFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("config file not found: %s", opts.File)
		}
		return opts.File, nil
	}
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("mongo.uri", d.Mongo.URI)
	v.SetDefault("mongo.database", d.Mongo.Database)
	v.SetDefault("api.addr", d.API.Addr)
	v.SetDefault("api.read_timeout", d.API.ReadTimeout)
	v.SetDefault("api.write_timeout", d.API.WriteTimeout)
	v.SetDefault("pypi.url", d.PyPI.URL)
}
