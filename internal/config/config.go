// Package config handles configuration loading and phonebook home resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// StorageConfig locates the contacts database.
type StorageConfig struct {
	Database string `yaml:"database"` // relative to the phonebook home unless absolute
}

// TransferConfig holds the default file names used by import and export.
type TransferConfig struct {
	JSONFile string `yaml:"json_file"`
	CSVFile  string `yaml:"csv_file"`
}

// Config is the root per-home configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Transfer TransferConfig `yaml:"transfer"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Database: "phonebook.db",
		},
		Transfer: TransferConfig{
			JSONFile: "contacts.json",
			CSVFile:  "contacts.csv",
		},
	}
}

// DatabasePath resolves the configured database against home.
func (c *Config) DatabasePath(home string) string {
	p := c.Storage.Database
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(home, p)
}

// Load reads a config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing or blank keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if st, ok := raw["storage"].(map[string]any); ok {
		if v, ok := st["database"].(string); ok && strings.TrimSpace(v) != "" {
			cfg.Storage.Database = strings.TrimSpace(v)
		}
	}

	if tr, ok := raw["transfer"].(map[string]any); ok {
		if v, ok := tr["json_file"].(string); ok && v != "" {
			cfg.Transfer.JSONFile = v
		}
		if v, ok := tr["csv_file"].(string); ok && v != "" {
			cfg.Transfer.CSVFile = v
		}
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global phonebook config file.
// This file stores only phonebook_home.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "phonebook", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the phonebook home path and the source of the resolution.
// Priority: PHONEBOOK_HOME env → persisted global config → ~/.phonebook
// source is one of "env", "config", or "default".
func ResolveHome() (path, source string) {
	if env := os.Getenv("PHONEBOOK_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".phonebook"), "default"
}

// GetHome returns the resolved phonebook home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// GetPersistedHome reads phonebook_home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	raw, err := readRaw(cfgPath)
	if err != nil || raw == nil {
		return "", false, err
	}

	val, _ := raw["phonebook_home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Preserve any other keys already in the file.
	raw, _ := readRaw(cfgPath)
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["phonebook_home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedHome removes phonebook_home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedHome() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	raw, err := readRaw(cfgPath)
	if err != nil || raw == nil {
		return false, err
	}
	if _, ok := raw["phonebook_home"]; !ok {
		return false, nil
	}
	delete(raw, "phonebook_home")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}

// readRaw loads a YAML file into a map. A missing or unparseable file yields
// (nil, nil) so callers fall through to defaults.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil
	}
	return raw, nil
}
