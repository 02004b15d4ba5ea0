package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the config directories.
const FileName = "holes.yaml"

// LoadHoles loads the game configuration.
// Search order: customPath -> ~/.cratehole/configs/holes.yaml ->
// ./configs/holes.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets.
func LoadHoles(customPath string) (HolesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HolesConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return HolesConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeOver(DefaultHolesConfig(), defaultHolesYAML)
	if err != nil {
		return DefaultHolesConfig(), nil
	}
	return cfg, nil
}

// decode parses data over the embedded defaults.
func decode(data []byte) (HolesConfig, error) {
	base, err := decodeOver(DefaultHolesConfig(), defaultHolesYAML)
	if err != nil {
		base = DefaultHolesConfig()
	}
	return decodeOver(base, data)
}

func decodeOver(base HolesConfig, data []byte) (HolesConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HolesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cratehole", "configs", filename)
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, defaultHolesYAML, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns where LoadHoles looks for the per-user config.
func UserConfigPath() string {
	return userConfigPath(FileName)
}
