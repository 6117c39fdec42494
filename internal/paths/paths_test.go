package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestKaraCopyPaths(t *testing.T) {
	dir, err := KaraCopyDir()
	if err != nil {
		t.Fatalf("KaraCopyDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", "karacopy")) {
		t.Errorf("KaraCopyDir() = %q, want .config/karacopy suffix", dir)
	}

	configPath, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}
	if filepath.Base(configPath) != "config.toml" {
		t.Errorf("ConfigPath() = %q, want config.toml base", configPath)
	}
	if filepath.Dir(configPath) != dir {
		t.Errorf("ConfigPath() dir = %q, want %q", filepath.Dir(configPath), dir)
	}

	plansDir, err := PlansDir()
	if err != nil {
		t.Fatalf("PlansDir() error: %v", err)
	}
	if filepath.Base(plansDir) != "plans" {
		t.Errorf("PlansDir() = %q, want plans base", plansDir)
	}

	logDir, err := LogDir()
	if err != nil {
		t.Fatalf("LogDir() error: %v", err)
	}
	if filepath.Base(logDir) != "logs" {
		t.Errorf("LogDir() = %q, want logs base", logDir)
	}
}

func TestActualUser(t *testing.T) {
	if ActualUser() == "" {
		t.Error("ActualUser() should never be empty")
	}
}
