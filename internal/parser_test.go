package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetParser(t *testing.T) {
	RegisterParser("test-format", ParserFunc(func(path string) ([]Expense, error) {
		return nil, nil
	}))

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"registered parser", "test-format", false},
		{"built-in xlsx", "xlsx", false},
		{"built-in simple-json", "simple-json", false},
		{"unknown format", "unknown-format", true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetParser(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetParser(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestParseSimpleJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	content := `{
		"expenses": [
			{"date": "2025-01-05", "amount": 50.00, "category": "Food", "description": "lunch"},
			{"date": "2025-01-06", "amount": 20.00, "category": "Food", "description": "coffee"}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	expenses, err := ParseSimpleJSON(path)
	if err != nil {
		t.Fatalf("ParseSimpleJSON() error = %v", err)
	}

	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].Amount != 50.00 || expenses[0].Category != "Food" || expenses[0].Description != "lunch" {
		t.Errorf("unexpected first expense: %+v", expenses[0])
	}
	if !expenses[1].Date.Equal(date("2025-01-06")) {
		t.Errorf("unexpected second date: %v", expenses[1].Date)
	}
}

func TestParseSimpleJSON_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	content := `{"expenses": [{"date": "05/01/2025", "amount": 50.00}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ParseSimpleJSON(path)
	if err == nil {
		t.Error("expected error for bad date, got nil")
	}
}

func TestParseSimpleJSON_MissingFile(t *testing.T) {
	_, err := ParseSimpleJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
