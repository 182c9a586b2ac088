// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/model"
)

// Currency formats amounts as "<CODE> <localized number>".
type Currency struct {
	printer *message.Printer
	sep     string // decimal separator of the locale
	code    string
	min     int
	max     int
}

// NewCurrency builds a formatter from currency settings. An unknown locale
// falls back to plain English grouping.
func NewCurrency(cfg config.CurrencyConfig) Currency {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	sep := "."
	if r := []rune(p.Sprintf("%v", number.Decimal(1.5, number.MinFractionDigits(1)))); len(r) > 2 {
		sep = string(r[1 : len(r)-1])
	}
	return Currency{
		printer: p,
		sep:     sep,
		code:    cfg.Code,
		min:     cfg.MinFractionDigits,
		max:     max(cfg.MaxFractionDigits, cfg.MinFractionDigits),
	}
}

// DefaultCurrency is the formatter for the default settings.
func DefaultCurrency() Currency {
	return NewCurrency(config.DefaultCurrency())
}

// Format renders d, rounded half away from zero to the maximum fraction
// digits. Digits are taken from the decimal itself, so large amounts are
// exact. Whole parts beyond the int64 range print without grouping.
func (c Currency) Format(d decimal.Decimal) string {
	if c.printer == nil {
		c = DefaultCurrency()
	}
	r := d.Round(int32(c.max))
	sign := ""
	if r.Sign() < 0 {
		sign = "-"
		r = r.Neg()
	}

	whole := r.Truncate(0)
	n := whole.String()
	if whole.BigInt().IsInt64() {
		n = c.printer.Sprintf("%v", number.Decimal(whole.IntPart()))
	}
	if frac := c.fraction(r.Sub(whole)); frac != "" {
		n += c.sep + frac
	}
	n = sign + n

	if c.code == "" {
		return n
	}
	return c.code + " " + n
}

// fraction returns the digits of f (0 <= f < 1) after the separator, with
// trailing zeros trimmed down to the minimum fraction digits.
func (c Currency) fraction(f decimal.Decimal) string {
	if c.max == 0 {
		return ""
	}
	digits := f.StringFixed(int32(c.max))
	digits = digits[strings.IndexByte(digits, '.')+1:]
	for len(digits) > c.min && strings.HasSuffix(digits, "0") {
		digits = digits[:len(digits)-1]
	}
	return digits
}

// FormatOptional renders an optional amount, or "-" when absent.
func (c Currency) FormatOptional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return c.Format(*d)
}

var numberPrinter = message.NewPrinter(language.English)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatPercent formats a 0-100 value with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate formats a due date as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

// FormatCovered renders the covered flag for tables.
func FormatCovered(covered bool) string {
	if covered {
		return "Yes"
	}
	return "No"
}

// FormatRelativeDays describes a due date relative to asOf.
// e.g., "today", "in 3 days", "2 days overdue"
func FormatRelativeDays(due, asOf time.Time) string {
	days := int(model.DateOf(due).Sub(model.DateOf(asOf)).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}
