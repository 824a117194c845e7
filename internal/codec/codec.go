// Package codec reads and writes item lists in interchange formats.
package codec

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

// Importer parses a list of items from a reader
type Importer interface {
	Parse(r io.Reader) ([]domain.Item, error)
	Format() string
}

// Exporter writes a list of items to a writer
type Exporter interface {
	Export(items []domain.Item, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// Formats lists the supported format identifiers
var Formats = []string{"json", "yaml"}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
}
