package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MEMESTYLE_BACKEND", "MEMESTYLE_STORAGE_DIR", "MEMESTYLE_REDIS_ADDR",
		"MEMESTYLE_MONGO_URI", "MEMESTYLE_ADDR", "MEMESTYLE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Storage.Backend)
	}
	if filepath.Base(cfg.Storage.Dir) != "styles" {
		t.Errorf("Dir = %q, want .../styles", cfg.Storage.Dir)
	}
	if cfg.Storage.Redis.Prefix != storage.DefaultRedisPrefix {
		t.Errorf("Redis.Prefix = %q", cfg.Storage.Redis.Prefix)
	}
	if cfg.Server.Addr != "localhost:8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[storage]
backend = "redis"

[storage.redis]
addr = "cache:6379"
db = 2

[server]
addr = ":9000"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.Redis.Addr != "cache:6379" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Storage.Redis)
	}
	// Unset keys keep their defaults.
	if cfg.Storage.Redis.Prefix != storage.DefaultRedisPrefix {
		t.Errorf("Redis.Prefix = %q, want default", cfg.Storage.Redis.Prefix)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != log.DebugLevel {
		t.Errorf("LogLevel() = %v, %v; want debug", level, err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("MEMESTYLE_BACKEND", "file")
	t.Setenv("MEMESTYLE_STORAGE_DIR", dir)
	t.Setenv("MEMESTYLE_ADDR", ":1234")
	path := writeConfig(t, "[storage]\nbackend = \"memory\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Storage.Dir, dir)
	}
	if cfg.Server.Addr != ":1234" {
		t.Errorf("Server.Addr = %q, want :1234", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[storage\nbackend = "},
		{"unknown key", "[storage]\nbakend = \"file\"\n"},
		{"bad backend", "[storage]\nbackend = \"s3\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"wrong type", "[server]\naddr = 8080\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Storage.Backend = "mongo"
	cfg.Storage.Mongo.Database = "memes"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Storage.Backend != "mongo" || got.Storage.Mongo.Database != "memes" {
		t.Errorf("round trip = %+v", got.Storage)
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "memory"
	cfg.Storage.Dir = "/tmp/x"

	opts := cfg.StorageOptions()
	if opts.Backend != storage.BackendMemory {
		t.Errorf("Backend = %q, want memory", opts.Backend)
	}
	if opts.Dir != "/tmp/x" {
		t.Errorf("Dir = %q", opts.Dir)
	}
	if opts.Mongo.Collection != storage.DefaultMongoCollection {
		t.Errorf("Mongo.Collection = %q", opts.Mongo.Collection)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "memestyle", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
