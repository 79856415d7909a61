// Package cart accumulates a visitor's selected products into line items.
package cart

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// Item is one line of the cart. Quantity is always at least 1.
type Item struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// Subtotal is price times quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is an immutable set of line items keyed by product ID. The zero value
// is an empty cart.
type Cart struct {
	items []Item
}

// New builds a cart from persisted items, dropping lines with no quantity and
// merging repeated IDs.
func New(items []Item) Cart {
	var c Cart
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i := c.index(it.ID); i >= 0 {
			c.items[i].Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Items returns a copy of the line items in insertion order.
func (c Cart) Items() []Item {
	return slices.Clone(c.items)
}

// Len is the number of distinct products.
func (c Cart) Len() int { return len(c.items) }

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool { return len(c.items) == 0 }

// Total is the exact sum of price times quantity.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the sum of quantities.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Get returns the line for id.
func (c Cart) Get(id uint) (Item, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}

func (c Cart) index(id uint) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}

// MarshalJSON exposes items with the derived total and count.
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(struct {
		Items []Item          `json:"items"`
		Total decimal.Decimal `json:"total"`
		Count int             `json:"count"`
	}{items, c.Total(), c.Count()})
}
