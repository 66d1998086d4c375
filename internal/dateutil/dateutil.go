// Package dateutil converts date patterns such as DD/MM/YYYY into Go
// layouts and applies them.
//
// Tokens are runs of Y, M or D: YYYY, YY, MMMM, MMM, MM, M, DD, D. A run
// with no matching token is consumed greedily from its longest token down,
// leftover letters stay literal. Text in [brackets] is copied verbatim.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Sentinel errors for date handling.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// Invoice date patterns.
const (
	DisplayFormat = "DD/MM/YYYY" // dates printed on the invoice
	CompactFormat = "YYYYMMDD"   // dates embedded in invoice numbers
	InputFormat   = "YYYY-MM-DD" // dates read from invoice documents
)

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// runLayouts maps a token letter to its Go layouts by run length, longest first.
var runLayouts = map[byte][]struct {
	n      int
	layout string
}{
	'Y': {{4, "2006"}, {2, "06"}},
	'M': {{4, "January"}, {3, "Jan"}, {2, "01"}, {1, "1"}},
	'D': {{2, "02"}, {1, "2"}},
}

// layouts caches resolved formats; the normalizer formats every line date.
var layouts sync.Map // format string -> Go layout

// ParseDateFormat converts a format string to a Go time layout.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]

		if c == '[' {
			literal, _, ok := strings.Cut(format[i+1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(literal)
			i += len(literal) + 2
			continue
		}

		tokens, isToken := runLayouts[c]
		if !isToken {
			b.WriteByte(c)
			i++
			continue
		}

		run := 1
		for i+run < len(format) && format[i+run] == c {
			run++
		}
		i += run
		for run > 0 {
			consumed := false
			for _, t := range tokens {
				if t.n <= run {
					b.WriteString(t.layout)
					run -= t.n
					consumed = true
					break
				}
			}
			if !consumed {
				b.WriteString(strings.Repeat(string(c), run))
				run = 0
			}
		}
	}
	return b.String(), nil
}

// Format renders t with a format string or preset name.
func Format(t time.Time, format string) (string, error) {
	l, err := layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(l), nil
}

// Parse reads value using a format string or preset name.
// The result is in UTC so calendar comparisons are not skewed by zones.
func Parse(value, format string) (time.Time, error) {
	l, err := layout(format)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(l, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, value, format)
	}
	return t, nil
}

// layout resolves presets (case-insensitive) and caches the result.
func layout(format string) (string, error) {
	if cached, ok := layouts.Load(format); ok {
		return cached.(string), nil
	}
	resolved := format
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		resolved = preset
	}
	l, err := ParseDateFormat(resolved)
	if err != nil {
		return "", err
	}
	layouts.Store(format, l)
	return l, nil
}
