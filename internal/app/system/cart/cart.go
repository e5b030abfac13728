// Package cart is the shopping cart the visitor carries between requests.
// It is a plain value; the Codec persists it in a signed, encrypted cookie
// so nothing is stored server-side before checkout.
package cart

import (
	"errors"
	"strings"
)

// ErrInvalidQuantity is returned when an item is added with quantity < 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Key identifies a cart line: the same product in another size or color
// is another line.
type Key struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Item is one cart line.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Key returns the line identity of it.
func (it Item) Key() Key {
	return Key{
		ProductID: strings.TrimSpace(it.ProductID),
		Size:      strings.TrimSpace(it.Size),
		Color:     strings.TrimSpace(it.Color),
	}
}

// Subtotal is price × quantity.
func (it Item) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// Cart is an ordered list of lines with unique keys.
type Cart struct {
	Items []Item `json:"items"`
}

// Add merges it into the cart. A line with the same key has its quantity
// increased by it.Quantity; otherwise it is appended.
func (c *Cart) Add(it Item) error {
	if it.Quantity < 1 {
		return ErrInvalidQuantity
	}
	k := it.Key()
	it.ProductID, it.Size, it.Color = k.ProductID, k.Size, k.Color
	for i := range c.Items {
		if c.Items[i].Key() == k {
			c.Items[i].Quantity += it.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, it)
	return nil
}

// Remove drops the line with key k. Missing keys are ignored.
func (c *Cart) Remove(k Key) {
	out := c.Items[:0]
	for _, it := range c.Items {
		if it.Key() != k {
			out = append(out, it)
		}
	}
	c.Items = out
}

// UpdateQuantity sets the quantity of the line with key k. n <= 0 removes
// the line. Missing keys are ignored.
func (c *Cart) UpdateQuantity(k Key, n int) {
	if n <= 0 {
		c.Remove(k)
		return
	}
	for i := range c.Items {
		if c.Items[i].Key() == k {
			c.Items[i].Quantity = n
			return
		}
	}
}

// Total is the sum of line subtotals, recomputed on every call.
func (c Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Subtotal()
	}
	return sum
}

// Count is the number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Clear removes every line.
func (c *Cart) Clear() { c.Items = nil }

// Find returns the line with key k.
func (c Cart) Find(k Key) (Item, bool) {
	for _, it := range c.Items {
		if it.Key() == k {
			return it, true
		}
	}
	return Item{}, false
}
