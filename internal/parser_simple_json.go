package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SimpleJSONFormat is a minimal JSON format for importing expenses
// Example:
//
//	{
//	  "expenses": [
//	    {"date": "2025-01-05", "amount": 50.00, "category": "Food", "description": "lunch"},
//	    {"date": "2025-01-06", "amount": 20.00, "category": "Food", "description": "coffee"}
//	  ]
//	}
//
// This format is easy to convert to from any bank export or data source.
type SimpleJSONFormat struct {
	Expenses []SimpleJSONExpense `json:"expenses"`
}

type SimpleJSONExpense struct {
	Date        string  `json:"date"`   // YYYY-MM-DD format
	Amount      float64 `json:"amount"` // positive
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) ([]Expense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var expenses []Expense
	for _, x := range jsonData.Expenses {
		date, err := time.Parse(DateFormat, x.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", x.Date, err)
		}
		expenses = append(expenses, Expense{
			Date:        date,
			Amount:      x.Amount,
			Category:    x.Category,
			Description: x.Description,
		})
	}

	return expenses, nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON))
}
