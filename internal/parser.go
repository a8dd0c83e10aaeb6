package internal

import (
	"fmt"
	"sort"
)

// Parser parses an external file into a list of expenses for import
// into the ledger.
type Parser interface {
	Parse(path string) ([]Expense, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]Expense, error)

func (f ParserFunc) Parse(path string) ([]Expense, error) {
	return f(path)
}

// parsers is the registry of available import parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given format name
func RegisterParser(format string, p Parser) {
	parsers[format] = p
}

// GetParser returns the parser for the given import format
func GetParser(format string) (Parser, error) {
	p, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return p, nil
}

// AvailableFormats returns the registered import formats, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range parsers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}
