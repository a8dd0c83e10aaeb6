package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config names the files the stores operate on. Paths are injected into
// the stores at construction, so tests can point them at temp dirs.
type Config struct {
	// LedgerPath is the CSV file holding the expense rows
	LedgerPath string `yaml:"ledger_path"`

	// BudgetPath is the YAML file holding the monthly limit
	BudgetPath string `yaml:"budget_path"`
}

// DefaultConfig places both files in the working directory.
func DefaultConfig() Config {
	return Config{
		LedgerPath: "expenses.csv",
		BudgetPath: "budget.yaml",
	}
}

// DefaultConfigPath returns the per-user config location, or empty
// string when the user config dir cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spendlog", "config.yaml")
}

// LoadConfig reads the config file at path, falling back to
// DefaultConfigPath when path is empty. A missing file yields the
// defaults; a present file only needs to name the paths it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
