// Package yamlutil decodes docfill's YAML config files.
// Callers depend on this package instead of the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps config files at 1MB.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func check(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown keys.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and rejects unknown keys, so a
// misspelled option fails loudly.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := check(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
