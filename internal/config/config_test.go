package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Content.QuestDir != "content/quests" {
		t.Errorf("expected default quest dir content/quests, got %q", cfg.Content.QuestDir)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "saves/resonance.db" {
		t.Errorf("expected default DSN saves/resonance.db, got %q", cfg.Database.DSN)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected defaults for missing file, got driver %q", cfg.Database.Driver)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "game.yaml")

	content := `
content:
  quest_dir: "data/quests"
database:
  driver: "postgres"
  dsn: "postgres://localhost/resonance?sslmode=disable"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Content.QuestDir != "data/quests" {
		t.Errorf("quest dir = %q, want data/quests", cfg.Content.QuestDir)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "game.yaml")

	// Only the content section is overridden; database keeps defaults.
	content := `
content:
  quest_dir: "mods/quests"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Content.QuestDir != "mods/quests" {
		t.Errorf("quest dir = %q, want mods/quests", cfg.Content.QuestDir)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "saves/resonance.db" {
		t.Errorf("database config should keep defaults, got %+v", cfg.Database)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "game.yaml")

	if err := os.WriteFile(configPath, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
	if cfg == nil || cfg.Database.Driver != "sqlite" {
		t.Error("invalid YAML should fall back to defaults")
	}
}
