package internal

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the calendar date layout used everywhere: in the ledger
// file, in CLI flags and in import formats.
const DateFormat = "2006-01-02"

// Uncategorized is the bucket for expenses recorded without a category.
const Uncategorized = "Uncategorized"

// Expense is a single logged expense. Id is the 1-based position of the
// row in the ledger file; it is assigned on load and never persisted.
// Expenses are not edited in place: an edit is a delete plus a re-add.
type Expense struct {
	Id          int
	Date        time.Time
	Amount      float64
	Category    string
	Description string
}

// Validate checks the invariants that must hold before an expense may
// be written to the ledger.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "missing or unparsable, want " + DateFormat}
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %.2f", e.Amount)}
	}
	return nil
}

// CategoryOrDefault returns the trimmed category, or Uncategorized when
// the expense was recorded without one.
func (e Expense) CategoryOrDefault() string {
	c := strings.TrimSpace(e.Category)
	if c == "" {
		return Uncategorized
	}
	return c
}
