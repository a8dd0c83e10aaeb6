package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONExpense is the JSON output format for a single expense
type JSONExpense struct {
	Id          int     `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

func toJSONExpense(e Expense) JSONExpense {
	return JSONExpense{
		Id:          e.Id,
		Date:        e.Date.Format(DateFormat),
		Amount:      e.Amount,
		Category:    e.CategoryOrDefault(),
		Description: e.Description,
	}
}

// PrintExpensesJSON outputs the expense list in JSON format
func PrintExpensesJSON(w io.Writer, expenses []Expense) error {
	out := make([]JSONExpense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toJSONExpense(e))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintSummaryJSON outputs the aggregate view in JSON format
func PrintSummaryJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// PrintExpensesTable outputs the expense list as a formatted table
func PrintExpensesTable(w io.Writer, expenses []Expense, cur Currency) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses recorded yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Id", "Date", "Amount", "Category", "Description"})
	for _, e := range expenses {
		t.AppendRow(table.Row{
			e.Id,
			e.Date.Format(DateFormat),
			cur.Format(e.Amount),
			e.CategoryOrDefault(),
			e.Description,
		})
	}
	t.Render()
}

// PrintSummaryTable outputs per-category totals and the budget line as
// a formatted table. Overspend is shown in red, headroom in green.
func PrintSummaryTable(w io.Writer, s Summary, cur Currency) {
	if len(s.Categories) == 0 {
		fmt.Fprintln(w, "Nothing recorded yet.")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Category", "Total"})
		for _, ct := range s.Categories {
			t.AppendRow(table.Row{ct.Category, cur.Format(ct.Total)})
		}
		t.AppendSeparator()
		t.AppendFooter(table.Row{"Total spent", cur.Format(s.TotalSpent)})
		t.Render()
	}

	if s.MonthlyLimit <= 0 {
		fmt.Fprintln(w, "No monthly budget set.")
		return
	}

	fmt.Fprintf(w, "Budget: %s\n", cur.Format(s.MonthlyLimit))
	if s.Remaining < 0 {
		fmt.Fprintf(w, "Over budget by %s\n", text.FgRed.Sprint(cur.Format(-s.Remaining)))
	} else {
		fmt.Fprintf(w, "Remaining: %s\n", text.FgGreen.Sprint(cur.Format(s.Remaining)))
	}
}
