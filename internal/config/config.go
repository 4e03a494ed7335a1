package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Gravitonian77/DailyXP/internal/storage"
)

// Config holds the few knobs DailyXP exposes. Everything has a sensible
// default; the file and the env vars are both optional.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// DefaultPath returns the config file location (~/.dailyxp.yaml).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".dailyxp.yaml"), nil
}

// Load reads the config file if present, fills in defaults, and applies env
// overrides (DAILYXP_DB, DAILYXP_DEBUG).
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an
// error; defaults apply.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No file, defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if cfg.DBPath == "" {
		dbPath, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = dbPath
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DAILYXP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DAILYXP_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}
