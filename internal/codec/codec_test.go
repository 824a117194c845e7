package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

var sample = []domain.Item{
	{ID: 1, Name: "Gadget", Price: decimal.RequireFromString("12.50"), Quantity: 3},
	{ID: 2, Name: "Widget", Price: decimal.RequireFromString("9.99"), Quantity: 0},
}

var priceByValue = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestForFormat(t *testing.T) {
	for _, format := range Formats {
		c, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, format, c.Format())
	}

	c, err := ForFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Format())

	_, err = ForFormat("csv")
	assert.EqualError(t, err, `unknown format "csv"`)
}

func TestExportThenParse(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, c.Export(sample, &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			if diff := cmp.Diff(sample, got, priceByValue); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONParseErrors(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`[{"name": "x", "colour": "red"}]`))
	assert.ErrorContains(t, err, "failed to parse JSON")

	_, err = NewJSONCodec().Parse(strings.NewReader(`[{"name": "x", "price": "cheap"}]`))
	assert.Error(t, err)
}

func TestParseErrorsKeepCause(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`[{`))
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.False(t, errors.As(err, &syntaxErr), "truncated input is an EOF, not a syntax error")
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))

	_, err = NewJSONCodec().Parse(strings.NewReader(`{]`))
	require.True(t, errors.As(err, &syntaxErr), "got %T", errors.Cause(err))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to parse JSON: "))
}

func TestYAMLParse(t *testing.T) {
	doc := `
items:
  - name: Bolt
    price: "0.10"
    quantity: 100
  - id: 9
    name: Nut
    price: 0.05
    quantity: 250
`
	got, err := NewYAMLCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(0), got[0].ID, "missing id leaves the item unpersisted")
	assert.Equal(t, "0.10", got[0].FormattedPrice())
	assert.Equal(t, int64(9), got[1].ID)
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("0.05")))
}

func TestYAMLParseErrors(t *testing.T) {
	_, err := NewYAMLCodec().Parse(strings.NewReader("items:\n  - name: x\n    price: cheap\n"))
	assert.ErrorContains(t, err, "invalid price")

	_, err = NewYAMLCodec().Parse(strings.NewReader("items:\n  - name: x\n    colour: red\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	got, err := NewYAMLCodec().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
