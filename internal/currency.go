package internal

import (
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats expense amounts for display.
type Currency struct {
	Code    string // "USD", "EUR", "SEK"
	unit    currency.Unit
	printer *message.Printer
	symbol  string // fixed symbol; empty means derive from unit
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// defaultLocaleForCurrency provides a "home" locale per currency, used
// when the currency is specified explicitly (e.g. --currency EUR).
var defaultLocaleForCurrency = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"INR": language.MustParse("en-IN"),
	"PLN": language.Polish,
	"BRL": language.BrazilianPortuguese,
}

// GetCurrency returns the Currency for a given code. Unknown codes are
// still usable: the code itself becomes the symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	unit, err := currency.ParseISO(code)
	isUnknown := err != nil
	if isUnknown {
		unit = currency.USD // fallback unit for number formatting only
	}

	tag, ok := defaultLocaleForCurrency[code]
	if !ok {
		tag = language.English
	}

	symbol := symbolOverrides[code]
	if symbol == "" && isUnknown {
		// unknown codes display as themselves
		symbol = code
	}

	return Currency{
		Code:    code,
		unit:    unit,
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// DetectSystemCurrency attempts to derive the currency from the locale
// environment (LC_MONETARY, LC_ALL, LANG). Returns empty string when
// nothing usable is set, e.g. in a C/POSIX environment.
func DetectSystemCurrency() string {
	for _, envVar := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale == "" || locale == "C" || locale == "POSIX" {
			continue
		}
		if code := currencyFromLocale(locale); code != "" {
			return code
		}
	}
	return ""
}

// currencyFromLocale maps a locale string like "sv_SE.UTF-8" to its
// region currency ("SEK"). Returns empty string when the locale has no
// region or the region has no known currency.
func currencyFromLocale(locale string) string {
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return ""
	}
	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return ""
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return ""
	}
	return unit.String()
}

// getSymbol returns the currency symbol, using the fixed one where set
func (c Currency) getSymbol() string {
	if c.symbol != "" {
		return c.symbol
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if this currency symbol should be placed before
// the amount. x/text/currency doesn't expose symbol positioning from
// CLDR patterns, so this list is maintained manually.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "USD", "GBP", "JPY", "CAD", "AUD", "HKD", "SGD", "NZD":
		return true
	default:
		return false
	}
}

// Format formats a money amount with two fraction digits and the
// currency symbol, e.g. "$1,234.50" or "1 234,50 kr".
func (c Currency) Format(amount float64) string {
	formatted := c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	symbol := c.getSymbol()

	if c.isPrefix() {
		return symbol + formatted
	}
	return formatted + " " + symbol
}
