package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/mdp/internal/mdp"
)

// Format selects an output encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
	FormatCUE
)

var formatNames = [...]string{"json", "yaml", "toml", "cue"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Formats lists the supported format names.
func Formats() []string {
	return append([]string(nil), formatNames[:]...)
}

// ParseFormat returns the format named s, ignoring case. "yml" is
// accepted for YAML.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		return FormatYAML, nil
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown export format %q (want one of %s)", s, strings.Join(formatNames[:], ", "))
}

// Marshal encodes kvs in format f.
func Marshal(f Format, kvs []mdp.KeyValue) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(kvs)
	case FormatYAML:
		return YAML(kvs)
	case FormatTOML:
		return TOML(kvs)
	case FormatCUE:
		return CUE(kvs)
	default:
		return nil, fmt.Errorf("unsupported export format %v", f)
	}
}

// Write encodes kvs in format f to w.
func Write(w io.Writer, f Format, kvs []mdp.KeyValue) error {
	data, err := Marshal(f, kvs)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
