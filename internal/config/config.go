// Package config loads memestyle's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/memestyle/config.toml (falling back to
// ~/.config/memestyle/config.toml). A missing file yields the defaults;
// environment variables override file values:
//
//	MEMESTYLE_BACKEND      storage backend (file, memory, redis, mongo)
//	MEMESTYLE_STORAGE_DIR  directory of the file backend
//	MEMESTYLE_REDIS_ADDR   redis address
//	MEMESTYLE_MONGO_URI    mongo connection string
//	MEMESTYLE_ADDR         HTTP listen address
//	MEMESTYLE_LOG_LEVEL    debug, info, warn or error
//
// Example file:
//
//	[storage]
//	backend = "redis"
//
//	[storage.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/storage"
)

// appName is used for configuration and data directories.
const appName = "memestyle"

// Config is the complete configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where styles are kept.
type StorageConfig struct {
	Backend string              `toml:"backend"`
	Dir     string              `toml:"dir"`
	Redis   storage.RedisConfig `toml:"redis"`
	Mongo   storage.MongoConfig `toml:"mongo"`
}

// ServerConfig configures `memestyle serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, _ := DataDir()
	return &Config{
		Storage: StorageConfig{
			Backend: string(storage.BackendFile),
			Dir:     dir,
			Redis: storage.RedisConfig{
				Addr:   "localhost:6379",
				Prefix: storage.DefaultRedisPrefix,
			},
			Mongo: storage.MongoConfig{
				URI:        storage.DefaultMongoURI,
				Database:   storage.DefaultMongoDatabase,
				Collection: storage.DefaultMongoCollection,
			},
		},
		Server: ServerConfig{Addr: "localhost:8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the default directory of the file backend
// ($XDG_DATA_HOME/memestyle/styles or ~/.local/share/memestyle/styles).
func DataDir() (string, error) {
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		return filepath.Join(home, appName, "styles"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "styles"), nil
}

// Load reads the config file at path, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"MEMESTYLE_BACKEND", &c.Storage.Backend},
		{"MEMESTYLE_STORAGE_DIR", &c.Storage.Dir},
		{"MEMESTYLE_REDIS_ADDR", &c.Storage.Redis.Addr},
		{"MEMESTYLE_MONGO_URI", &c.Storage.Mongo.URI},
		{"MEMESTYLE_ADDR", &c.Server.Addr},
		{"MEMESTYLE_LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks backend and log level names.
func (c *Config) Validate() error {
	switch storage.Backend(c.Storage.Backend) {
	case storage.BackendFile:
		if c.Storage.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "storage.dir is required for the file backend")
		}
	case storage.BackendMemory, storage.BackendRedis, storage.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid storage.backend %q (must be file, memory, redis or mongo)", c.Storage.Backend)
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid log.level")
	}
	return nil
}

// LogLevel parses Log.Level; empty means info.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: storage.Backend(c.Storage.Backend),
		Dir:     c.Storage.Dir,
		Redis:   c.Storage.Redis,
		Mongo:   c.Storage.Mongo,
	}
}
