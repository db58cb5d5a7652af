// Package config loads the game configuration from YAML with sensible
// defaults for a local single-player session.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds game-wide configuration settings.
type GameConfig struct {
	Content  ContentConfig  `yaml:"content"`
	Database DatabaseConfig `yaml:"database"`
}

// ContentConfig locates the game's data files.
type ContentConfig struct {
	// QuestDir is the directory holding quest definition YAML files.
	QuestDir string `yaml:"quest_dir"`
}

// DatabaseConfig selects the save-store backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// DSN is the connection string. For sqlite this is a file path.
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a GameConfig with local single-player defaults.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Content: ContentConfig{
			QuestDir: "content/quests",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "saves/resonance.db",
		},
	}
}

// LoadConfig loads game configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*GameConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}
