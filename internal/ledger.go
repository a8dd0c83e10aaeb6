package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ledgerHeader is the fixed column order of the ledger file.
var ledgerHeader = []string{"date", "amount", "category", "description"}

// LedgerStore reads and writes the expense ledger, a CSV file with a
// header row and one row per expense. Every mutation is a full
// read-then-write of the file; single user, single process, no locking.
type LedgerStore struct {
	Path string
}

func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{Path: path}
}

// Load returns all expenses in file order, with ids assigned from row
// position starting at 1. A missing file is an empty ledger, not an
// error. Rows that fail to parse are skipped with a warning so the
// ledger stays usable after manual edits.
func (s *LedgerStore) Load() ([]Expense, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var expenses []Expense
	for i, row := range rows {
		if i == 0 && isLedgerHeader(row) {
			continue
		}
		e, err := parseLedgerRow(row)
		if err != nil {
			log.Warnf("skipping ledger row %d: %v", i+1, err)
			continue
		}
		e.Id = len(expenses) + 1
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Append validates the expense and writes it as the last row. The file
// is untouched when validation fails.
func (s *LedgerStore) Append(e Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	expenses, err := s.Load()
	if err != nil {
		return err
	}
	return s.write(append(expenses, e))
}

// AppendAll bulk-appends expenses with a single rewrite of the file.
// Records failing validation are skipped with a warning rather than
// aborting the import. Returns how many were added and skipped.
func (s *LedgerStore) AppendAll(incoming []Expense) (added, skipped int, err error) {
	expenses, err := s.Load()
	if err != nil {
		return 0, 0, err
	}
	for _, e := range incoming {
		if err := e.Validate(); err != nil {
			log.Warnf("skipping imported expense: %v", err)
			skipped++
			continue
		}
		expenses = append(expenses, e)
		added++
	}
	if added == 0 {
		return 0, skipped, nil
	}
	return added, skipped, s.write(expenses)
}

// Delete removes the expense with the given 1-based id and rewrites the
// remaining rows in their original order.
func (s *LedgerStore) Delete(id int) error {
	expenses, err := s.Load()
	if err != nil {
		return err
	}
	if id < 1 || id > len(expenses) {
		return &NotFoundError{Id: id}
	}
	return s.write(append(expenses[:id-1], expenses[id:]...))
}

// write replaces the ledger file wholesale. It writes to a temp file in
// the same directory and renames it over the ledger, so a failed write
// never leaves a partial file behind. Only the given records are
// serialized, so a mutation compacts the file: rows that Load skipped
// as corrupt are gone for good after the next Append or Delete.
func (s *LedgerStore) write(expenses []Expense) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(ledgerHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Date.Format(DateFormat),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.Description,
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("writing ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

func isLedgerHeader(row []string) bool {
	if len(row) != len(ledgerHeader) {
		return false
	}
	for i, col := range ledgerHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

func parseLedgerRow(row []string) (Expense, error) {
	if len(row) != len(ledgerHeader) {
		return Expense{}, fmt.Errorf("want %d fields, got %d", len(ledgerHeader), len(row))
	}
	date, err := time.Parse(DateFormat, strings.TrimSpace(row[0]))
	if err != nil {
		return Expense{}, fmt.Errorf("parsing date %q: %w", row[0], err)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return Expense{}, fmt.Errorf("parsing amount %q: %w", row[1], err)
	}
	if amount <= 0 {
		return Expense{}, fmt.Errorf("amount %v is not positive", amount)
	}
	return Expense{
		Date:        date,
		Amount:      amount,
		Category:    strings.TrimSpace(row[2]),
		Description: row[3],
	}, nil
}
