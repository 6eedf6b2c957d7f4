// Package codec decodes and encodes configuration documents in TOML or YAML
// behind one API, isolating the external parsers from callers.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MaxInputSize limits input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData          = errors.New("codec: nil or empty data")
	ErrNilDestination   = errors.New("codec: nil destination pointer")
	ErrInputTooLarge    = errors.New("codec: input exceeds maximum size")
	ErrUnsupportedCodec = errors.New("codec: unsupported format")
)

// Format is a document syntax.
type Format int

// Supported formats.
const (
	TOML Format = iota
	YAML
)

// String returns the canonical file extension without the dot.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat resolves a format name ("toml", "yaml", "yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("%w: %q (use toml or yaml)", ErrUnsupportedCodec, name)
}

// FormatFor picks the format from a file extension. Anything that is not
// YAML is read as TOML.
func FormatFor(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return TOML
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(f Format, data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	var err error
	switch f {
	case YAML:
		err = yaml.UnmarshalWithOptions(data, v, yaml.Strict())
	default:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(v)
	}
	if err != nil {
		return fmt.Errorf("codec: %s: %w", f, describe(err))
	}
	return nil
}

// Marshal encodes v. TOML output carries the struct's `comment` tags.
func Marshal(f Format, v any) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch f {
	case YAML:
		out, err = yaml.Marshal(v)
	default:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf).SetIndentTables(true)
		err = enc.Encode(v)
		out = buf.Bytes()
	}
	if err != nil {
		return nil, fmt.Errorf("codec: %s: %w", f, err)
	}
	return out, nil
}

// describe expands go-toml's strict error, whose Error() only says that
// fields are missing, with the offending keys.
func describe(err error) error {
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return err
	}
	keys := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		keys = append(keys, strings.Join(e.Key(), "."))
	}
	return fmt.Errorf("%w: unknown key(s) %s", err, strings.Join(keys, ", "))
}
