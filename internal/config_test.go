package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "ledger_path: /data/my-ledger.csv\nbudget_path: /data/my-budget.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/my-ledger.csv", cfg.LedgerPath)
	assert.Equal(t, "/data/my-budget.yaml", cfg.BudgetPath)
}

func TestLoadConfig_PartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger_path: other.csv\n"), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.LedgerPath)
	assert.Equal(t, DefaultConfig().BudgetPath, cfg.BudgetPath)
}

func TestConfigSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	cfg := Config{
		LedgerPath: filepath.Join(dir, "expenses.csv"),
		BudgetPath: filepath.Join(dir, "budget.yaml"),
	}

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger_path: [not, a, string\n"), 0644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}
