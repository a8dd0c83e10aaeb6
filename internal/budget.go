package internal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// budgetFile is the on-disk shape of the budget store: a single
// key-value pair.
type budgetFile struct {
	MonthlyLimit float64 `yaml:"monthly_limit"`
}

// BudgetStore reads and writes the single monthly budget value.
type BudgetStore struct {
	Path string
}

func NewBudgetStore(path string) *BudgetStore {
	return &BudgetStore{Path: path}
}

// Load returns the monthly limit, or 0 when no budget has been saved
// yet (a missing file is not an error).
func (s *BudgetStore) Load() (float64, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading budget file: %w", err)
	}
	var b budgetFile
	if err := yaml.Unmarshal(data, &b); err != nil {
		return 0, fmt.Errorf("parsing budget file: %w", err)
	}
	return b.MonthlyLimit, nil
}

// Save overwrites the budget file wholesale.
func (s *BudgetStore) Save(limit float64) error {
	if limit < 0 {
		return &ValidationError{Field: "monthly_limit", Reason: fmt.Sprintf("must not be negative, got %.2f", limit)}
	}
	data, err := yaml.Marshal(budgetFile{MonthlyLimit: limit})
	if err != nil {
		return fmt.Errorf("marshaling budget: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("writing budget file: %w", err)
	}
	return nil
}
