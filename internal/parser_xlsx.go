package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads expenses from an Excel sheet. The first sheet must
// contain a header row with Date, Amount and Category columns;
// Description is optional. Rows with an empty date and amount are
// treated as trailing noise and skipped silently.
func ParseXLSX(path string) ([]Expense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	dateCol, amountCol, categoryCol, descCol := -1, -1, -1, -1
	dataStartRow := -1

	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
				dataStartRow = i + 1
			case "amount":
				amountCol = j
			case "category":
				categoryCol = j
			case "description":
				descCol = j
			}
		}
		if dateCol >= 0 && amountCol >= 0 && categoryCol >= 0 {
			break
		}
	}

	if dateCol < 0 || amountCol < 0 || categoryCol < 0 {
		return nil, fmt.Errorf("could not find required columns (Date, Amount, Category)")
	}

	var expenses []Expense
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		cell := func(col int) string {
			if col < 0 || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}

		dateStr := cell(dateCol)
		amountStr := cell(amountCol)
		if dateStr == "" && amountStr == "" {
			continue
		}

		date, err := time.Parse(DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+1, dateStr, err)
		}

		amountStr = strings.ReplaceAll(amountStr, ",", ".")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+1, amountStr, err)
		}

		expenses = append(expenses, Expense{
			Date:        date,
			Amount:      amount,
			Category:    cell(categoryCol),
			Description: cell(descCol),
		})
	}

	return expenses, nil
}

func init() {
	RegisterParser("xlsx", ParserFunc(ParseXLSX))
}
