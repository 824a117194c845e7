package codec

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument is the on-disk YAML layout
type yamlDocument struct {
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID       int64  `yaml:"id,omitempty"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity int64  `yaml:"quantity"`
}

// Parse reads an items document
func (c *YAMLCodec) Parse(r io.Reader) ([]domain.Item, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	items := make([]domain.Item, 0, len(doc.Items))
	for i, yi := range doc.Items {
		price, err := decimal.NewFromString(yi.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d (%s): invalid price %q", i, yi.Name, yi.Price)
		}
		items = append(items, domain.Item{
			ID:       yi.ID,
			Name:     yi.Name,
			Price:    price,
			Quantity: yi.Quantity,
		})
	}
	return items, nil
}

// Export writes items as an items document
func (c *YAMLCodec) Export(items []domain.Item, w io.Writer) error {
	doc := yamlDocument{Items: make([]yamlItem, 0, len(items))}
	for _, item := range items {
		doc.Items = append(doc.Items, yamlItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.String(),
			Quantity: item.Quantity,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}
	return nil
}
