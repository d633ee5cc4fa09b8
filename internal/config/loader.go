package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configFile = "wordfall.yaml"

// LoadWordfall loads the word fall configuration.
// Search order: customPath -> ~/.flashread/configs/wordfall.yaml -> ./configs/wordfall.yaml -> embedded default.
// Files are layered over the embedded default, so a file only needs the keys it changes.
// A custom path ending in .toml is decoded as TOML.
func LoadWordfall(customPath string) (WordfallConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			layered := cfg
			if err := yaml.Unmarshal(data, &layered); err == nil {
				return layered, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err == nil {
			return layered, nil
		}
	}

	return cfg, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded
// defaults if the embed is broken.
func embeddedDefault() WordfallConfig {
	var cfg WordfallConfig
	if err := yaml.Unmarshal(defaultWordfallYAML, &cfg); err != nil {
		return DefaultWordfallConfig()
	}
	return cfg
}

func decodeFile(path string, cfg *WordfallConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// WriteDefault writes the embedded default configuration to path,
// creating parent directories. Existing files are not overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot create config %s: %w", path, err)
		}
		defer f.Close()
		if err := toml.NewEncoder(f).Encode(embeddedDefault()); err != nil {
			return fmt.Errorf("cannot encode config %s: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, defaultWordfallYAML, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the default per-user config location.
func UserConfigPath() string {
	return userConfigPath(configFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flashread", "configs", filename)
}

// ApplyDifficultyPreset overrides the configured difficulty when a preset
// was given on the command line.
func ApplyDifficultyPreset(cfg *WordfallConfig, preset string) {
	if preset == "" {
		return
	}
	cfg.Difficulty = string(ParseDifficulty(preset))
}
