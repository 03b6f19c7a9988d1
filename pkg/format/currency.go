// Package format renders monetary amounts for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter renders amounts with locale-aware digit grouping, a fixed
// currency symbol and two fraction digits (e.g. "£1,198.50").
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter builds a formatter for a BCP 47 locale such as "en-GB".
func NewCurrencyFormatter(locale, symbol string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &CurrencyFormatter{printer: message.NewPrinter(tag), symbol: symbol}, nil
}

// DefaultCurrencyFormatter formats pounds sterling for the en-GB locale.
func DefaultCurrencyFormatter() *CurrencyFormatter {
	return &CurrencyFormatter{
		printer: message.NewPrinter(language.BritishEnglish),
		symbol:  constants.DefaultCurrencySymbol,
	}
}

// Currency returns amount with the currency symbol, e.g. "-£1,234.56".
func (f *CurrencyFormatter) Currency(amount float64) string {
	formatted := f.Numeric(math.Abs(amount))
	if amount < 0 && formatted != f.Numeric(0) {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Numeric returns amount with grouping but without a currency symbol.
func (f *CurrencyFormatter) Numeric(amount float64) string {
	return f.printer.Sprintf("%.2f", amount)
}

// Symbol is the currency symbol prefixed by Currency.
func (f *CurrencyFormatter) Symbol() string {
	return f.symbol
}
