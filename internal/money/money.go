// Package money renders decimal amounts for invoices.
//
// Arithmetic stays in shopspring/decimal; only the final string is
// produced here. Grouping follows the CLDR pattern of the locale, so
// en-IN renders lakhs (1,00,000.00) while en-US renders thousands.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Places is the number of fraction digits printed for every amount.
const Places = 2

// MaxGroupedDigits is the longest integer part Grouped formats per locale.
const MaxGroupedDigits = 300

// DefaultLocale is the grouping locale used when none is configured.
var DefaultLocale = language.MustParse("en-IN")

// ErrInvalidAmount indicates an amount that cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// Fixed renders d with exactly two fraction digits and no grouping.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Grouped renders d with exactly two fraction digits in the number format
// of locale: its grouping sizes, group and decimal separators, sign and
// digits. x/text only formats machine numbers, so it renders a number of
// the same magnitude and the exact digits of d are written into that
// layout. Amounts too large for that fall back to Fixed.
func Grouped(d decimal.Decimal, locale language.Tag) string {
	fixed := d.Round(Places)
	digits := strings.Replace(fixed.Abs().StringFixed(Places), ".", "", 1)
	intDigits := len(digits) - Places
	if intDigits > MaxGroupedDigits {
		return Fixed(fixed)
	}

	magnitude := 5 * math.Pow10(intDigits-1)
	if fixed.IsNegative() {
		magnitude = -magnitude
	}
	layout := []rune(message.NewPrinter(locale).Sprint(number.Decimal(magnitude, number.Scale(Places))))

	// The layout ends in fraction zeros, which gives the locale's zero digit.
	zero, slots := rune(-1), 0
	for _, r := range layout {
		if unicode.IsDigit(r) {
			zero = r
			slots++
		}
	}
	if slots != len(digits) {
		return Fixed(fixed)
	}

	var b strings.Builder
	next := 0
	for _, r := range layout {
		if unicode.IsDigit(r) {
			r = zero + rune(digits[next]-'0')
			next++
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Parse reads a plain decimal string such as "65000" or "499.50".
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
