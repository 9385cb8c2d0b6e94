package document

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NethermindEth/flatconv/encoder"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown format (known: yaml, json, cbor)")

// Format is a document serialisation.
type Format int

var (
	_ pflag.Value              = (*Format)(nil)
	_ encoding.TextUnmarshaler = (*Format)(nil)
)

const (
	YAML Format = iota
	JSON
	CBOR
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	default:
		// Should not happen.
		panic(ErrUnknownFormat)
	}
}

func (f Format) MarshalYAML() (any, error) {
	return f.String(), nil
}

func (f *Format) Set(s string) error {
	switch s {
	case "YAML", "yaml", "yml":
		*f = YAML
	case "JSON", "json":
		*f = JSON
	case "CBOR", "cbor":
		*f = CBOR
	default:
		return ErrUnknownFormat
	}
	return nil
}

func (f *Format) Type() string {
	return "Format"
}

func (f *Format) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

// Marshal serialises g. JSON output is indented, CBOR output is canonical.
func Marshal(f Format, g *Graph) ([]byte, error) {
	switch f {
	case YAML:
		return yaml.Marshal(g)
	case JSON:
		return json.MarshalIndent(g, "", "  ")
	case CBOR:
		return encoder.Marshal(g)
	default:
		return nil, fmt.Errorf("marshal graph: %w", ErrUnknownFormat)
	}
}

func Unmarshal(f Format, data []byte) (*Graph, error) {
	g := new(Graph)
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, g)
	case JSON:
		err = json.Unmarshal(data, g)
	case CBOR:
		err = encoder.Unmarshal(data, g)
	default:
		return nil, fmt.Errorf("unmarshal graph: %w", ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s graph: %w", f, err)
	}
	return g, nil
}
