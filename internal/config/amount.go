package config

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-invoice2pdf/internal/money"
)

// Amount is a decimal that decodes from YAML numbers or strings.
// Quoted values ("499.50") keep every digit; bare numbers go through
// the YAML scalar first.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) *Amount {
	return &Amount{Decimal: d}
}

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (a *Amount) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Errorf("%w: %v", money.ErrInvalidAmount, raw)
	}

	d, err := money.Parse(s)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// MarshalYAML writes the amount as a quoted string so no precision is lost.
func (a Amount) MarshalYAML() (any, error) {
	return a.String(), nil
}
