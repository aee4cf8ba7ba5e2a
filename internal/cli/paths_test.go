package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	t.Setenv("MEMESTYLE_STORAGE_DIR", dir)

	out, err := execute(t, c, "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("path = %q, want %q", strings.TrimSpace(out), dir)
	}

	out, err = execute(t, c, "path", "topAttr")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "topAttr"); strings.TrimSpace(out) != want {
		t.Errorf("path topAttr = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := execute(t, c, "path", "../x"); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestPathCommandNonFileBackend(t *testing.T) {
	c, _ := newTestCLI(t)
	t.Setenv("MEMESTYLE_BACKEND", "memory")
	if _, err := execute(t, c, "path"); err == nil {
		t.Error("expected error for the memory backend")
	}
}

func TestConfigInitShowPath(t *testing.T) {
	c, _ := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := execute(t, c, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), path)
	}

	if _, err := execute(t, c, "--config", path, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out, err = execute(t, c, "--config", path, "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init output = %q", out)
	}

	t.Setenv("MEMESTYLE_BACKEND", "redis")
	out, err = execute(t, c, "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[storage]", `backend = "redis"`, "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	c, _ := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\nbackend = \"floppy\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, c, "--config", path, "show", "k"); err == nil {
		t.Error("expected error for invalid backend")
	}
}
