// Package currency provides the display-currency table used by the dashboard:
// conversion from the model's EUR figures into a selected currency plus
// human-readable formatting.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes one supported display currency. Rate is the multiplier
// applied to an EUR amount to obtain this currency.
type Currency struct {
	Code   string
	Symbol string
	Rate   decimal.Decimal
}

// Table holds the supported currencies keyed by code. It is built once at
// startup and read-only afterwards.
type Table struct {
	currencies map[string]Currency
	printer    *message.Printer
}

// DefaultTable returns the canonical currency table: EUR as the base plus the
// USD and GBP rates the dashboard ships with. Deployments override the rates
// via configuration.
func DefaultTable() *Table {
	return NewTable([]Currency{
		{Code: "EUR", Symbol: "€", Rate: decimal.NewFromInt(1)},
		{Code: "USD", Symbol: "$", Rate: decimal.NewFromFloat(1.08)},
		{Code: "GBP", Symbol: "£", Rate: decimal.NewFromFloat(0.86)},
	})
}

// NewTable builds a Table from the given currencies. Codes are upper-cased.
func NewTable(currencies []Currency) *Table {
	table := &Table{
		currencies: make(map[string]Currency, len(currencies)),
		printer:    message.NewPrinter(language.English),
	}
	for _, c := range currencies {
		c.Code = strings.ToUpper(c.Code)
		table.currencies[c.Code] = c
	}
	return table
}

// Lookup returns the currency for code, reporting whether it is supported.
func (t *Table) Lookup(code string) (Currency, bool) {
	c, ok := t.currencies[strings.ToUpper(code)]
	return c, ok
}

// Codes returns the supported currency codes in no particular order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.currencies))
	for code := range t.currencies {
		codes = append(codes, code)
	}
	return codes
}

// Convert converts an EUR amount into the named currency.
func (t *Table) Convert(amountEUR float64, code string) (float64, error) {
	c, ok := t.Lookup(code)
	if !ok {
		return 0, fmt.Errorf("unsupported currency %q", code)
	}
	converted, _ := decimal.NewFromFloat(amountEUR).Mul(c.Rate).Round(2).Float64()
	return converted, nil
}

// Format converts an EUR amount into the named currency and renders it with
// the currency symbol and grouped digits (e.g. "$1,234.56"). Unsupported
// codes fall back to the raw EUR amount.
func (t *Table) Format(amountEUR float64, code string) string {
	c, ok := t.Lookup(code)
	if !ok {
		return t.printer.Sprintf("%.2f", amountEUR)
	}
	converted, _ := decimal.NewFromFloat(amountEUR).Mul(c.Rate).Round(2).Float64()
	if converted < 0 {
		return t.printer.Sprintf("-%s%.2f", c.Symbol, -converted)
	}
	return t.printer.Sprintf("%s%.2f", c.Symbol, converted)
}
