// Package yamlutil reads and writes the YAML used for invoice documents and
// service catalogs. It keeps goccy/go-yaml behind one small surface and
// fixes the encoding style so generated documents look hand-written.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a single document (1MB). Invoices are a few KB.
var MaxInputSize = 1 << 20

// Sentinel errors for YAML handling.
var (
	ErrEmptyInput    = errors.New("yamlutil: empty input")
	ErrNilTarget     = errors.New("yamlutil: nil decode target")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
	ErrDecode        = errors.New("yamlutil: decode failed")
	ErrEncode        = errors.New("yamlutil: encode failed")
)

// encodeOptions indents sequences under their key and keeps multi-line
// strings (addresses, notes) as literal blocks.
var encodeOptions = []yaml.EncodeOption{
	yaml.Indent(2),
	yaml.IndentSequence(true),
	yaml.UseLiteralStyleIfMultiline(true),
}

// Unmarshal decodes data into v, ignoring unknown keys.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and rejects unknown keys, so a typo
// such as "ammount" fails instead of silently billing the catalog price.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, yaml.FormatError(err, false, false))
	}
	return nil
}

// Marshal encodes v in the package's document style.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, encodeOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return out, nil
}

// Encode writes v to w in the package's document style.
func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w, encodeOptions...)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return enc.Close()
}
