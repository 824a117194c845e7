package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Item represents a stock entry in the inventory
type Item struct {
	ID       int64           `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Quantity int64           `json:"quantity" yaml:"quantity"`
}

// NewItem builds an unpersisted item, parsing price from its text form.
// Quantity is not range checked; non-negative stock is an application convention.
func NewItem(name, price string, quantity int64) (Item, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return Item{}, errors.Wrapf(err, "invalid price %q", price)
	}
	return Item{
		Name:     name,
		Price:    p,
		Quantity: quantity,
	}, nil
}

// IsPersisted returns true once the storage engine has assigned an ID
func (i Item) IsPersisted() bool {
	return i.ID != 0
}

// Equal compares all fields, treating prices as equal by value (9.9 == 9.90)
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Name == other.Name &&
		i.Price.Equal(other.Price) &&
		i.Quantity == other.Quantity
}

// FormattedPrice renders the price with two decimal places
func (i Item) FormattedPrice() string {
	return i.Price.StringFixed(2)
}

func (i Item) String() string {
	return fmt.Sprintf("Item{id=%d name=%q price=%s qty=%d}", i.ID, i.Name, i.Price.String(), i.Quantity)
}
