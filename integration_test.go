package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"spendlog/internal"
)

// testEnv writes a config file pointing both stores into a temp dir and
// returns the --config argument to pass to the CLI.
func testEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	cfg := internal.Config{
		LedgerPath: filepath.Join(dir, "expenses.csv"),
		BudgetPath: filepath.Join(dir, "budget.yaml"),
	}
	if err := cfg.Save(configPath); err != nil {
		t.Fatal(err)
	}
	return configPath
}

// runCLI runs the spendlog CLI with the given args and returns stdout.
func runCLI(t *testing.T, configPath string, args ...string) string {
	t.Helper()

	fullArgs := append([]string{"run", "."}, args...)
	fullArgs = append(fullArgs, "--config", configPath)
	cmd := exec.Command("go", fullArgs...)
	cmd.Env = append(os.Environ(), "LC_ALL=en_US.UTF-8")

	// Capture stdout only (stderr has go download messages)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Fatalf("CLI failed: %v\nStderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("CLI failed: %v", err)
	}
	return string(output)
}

// runCLIExpectError runs the CLI expecting a non-zero exit and returns stderr.
func runCLIExpectError(t *testing.T, configPath string, args ...string) string {
	t.Helper()

	fullArgs := append([]string{"run", "."}, args...)
	fullArgs = append(fullArgs, "--config", configPath)
	cmd := exec.Command("go", fullArgs...)

	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected CLI to fail, got output: %s", output)
	}
	return string(output)
}

func TestCLI_AddListReport(t *testing.T) {
	configPath := testEnv(t)

	runCLI(t, configPath, "add", "50.00", "--date", "2025-01-05", "--category", "Food", "--description", "lunch")
	runCLI(t, configPath, "add", "20.00", "--date", "2025-01-06", "--category", "Food", "--description", "coffee")
	runCLI(t, configPath, "budget", "set", "200")

	var expenses []internal.JSONExpense
	out := runCLI(t, configPath, "list", "--output", "json")
	if err := json.Unmarshal([]byte(out), &expenses); err != nil {
		t.Fatalf("failed to parse list output: %v\nOutput: %s", err, out)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].Description != "lunch" || expenses[1].Description != "coffee" {
		t.Errorf("expenses out of order: %+v", expenses)
	}

	var summary internal.Summary
	out = runCLI(t, configPath, "report", "--output", "json")
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to parse report output: %v\nOutput: %s", err, out)
	}
	if summary.TotalSpent != 70.00 {
		t.Errorf("TotalSpent = %v, want 70", summary.TotalSpent)
	}
	if summary.Remaining != 130.00 {
		t.Errorf("Remaining = %v, want 130", summary.Remaining)
	}
	if len(summary.Categories) != 1 || summary.Categories[0].Total != 70.00 {
		t.Errorf("unexpected categories: %+v", summary.Categories)
	}
}

func TestCLI_DeleteReordersIds(t *testing.T) {
	configPath := testEnv(t)

	runCLI(t, configPath, "add", "1.00", "--date", "2025-01-01", "--description", "first")
	runCLI(t, configPath, "add", "2.00", "--date", "2025-01-02", "--description", "second")
	runCLI(t, configPath, "add", "3.00", "--date", "2025-01-03", "--description", "third")

	runCLI(t, configPath, "delete", "2")

	var expenses []internal.JSONExpense
	out := runCLI(t, configPath, "list", "--output", "json")
	if err := json.Unmarshal([]byte(out), &expenses); err != nil {
		t.Fatalf("failed to parse list output: %v\nOutput: %s", err, out)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].Description != "first" || expenses[1].Description != "third" {
		t.Errorf("unexpected expenses after delete: %+v", expenses)
	}
}

func TestCLI_InvalidAmountRejected(t *testing.T) {
	configPath := testEnv(t)

	out := runCLIExpectError(t, configPath, "add", "0", "--date", "2025-01-01")
	if !strings.Contains(out, "amount") {
		t.Errorf("expected amount validation message, got: %s", out)
	}

	// ledger must still be empty
	listOut := runCLI(t, configPath, "list", "--output", "json")
	if strings.TrimSpace(listOut) != "[]" {
		t.Errorf("expected empty ledger, got: %s", listOut)
	}
}

func TestCLI_DeleteNonexistent(t *testing.T) {
	configPath := testEnv(t)

	out := runCLIExpectError(t, configPath, "delete", "7")
	if !strings.Contains(out, "no expense with id 7") {
		t.Errorf("expected not-found message, got: %s", out)
	}
}
