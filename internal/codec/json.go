package codec

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

// JSONCodec handles JSON import/export. Prices are encoded as strings.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a JSON array of items
func (c *JSONCodec) Parse(r io.Reader) ([]domain.Item, error) {
	var items []domain.Item
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}
	return items, nil
}

// Export writes items as an indented JSON array
func (c *JSONCodec) Export(items []domain.Item, w io.Writer) error {
	if items == nil {
		items = []domain.Item{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}
