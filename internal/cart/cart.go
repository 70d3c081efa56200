// Package cart merges frozen line snapshots. Prices are never recomputed here.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
)

var ErrInvalidLine = errors.New("invalid cart line")

// MaxQuantity bounds a single line, merged quantities included.
const MaxQuantity = 999

// Key derives the dedup key productID|variantKey|serialized(options).
func Key(productID, variantKey string, options []model.SelectedOption) string {
	if options == nil {
		options = []model.SelectedOption{}
	}
	opts, _ := json.Marshal(options)
	return productID + "|" + variantKey + "|" + string(opts)
}

// KeyOf derives the dedup key of a line, ignoring whatever Key it carries.
func KeyOf(l model.LineItem) string {
	return Key(l.ProductID, l.VariantKey, l.Options)
}

func validate(l model.LineItem) error {
	switch {
	case strings.TrimSpace(l.ProductID) == "":
		return fmt.Errorf("%w: missing product id", ErrInvalidLine)
	case l.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidLine)
	case l.Quantity > MaxQuantity:
		return fmt.Errorf("%w: quantity above %d", ErrInvalidLine, MaxQuantity)
	case l.UnitPrice < 0:
		return fmt.Errorf("%w: negative unit price", ErrInvalidLine)
	}
	if _, err := pricing.LineTotal(l); err != nil {
		return fmt.Errorf("%w: line total %v", ErrInvalidLine, err)
	}
	for _, o := range l.Options {
		if o.PriceExtra < 0 {
			return fmt.Errorf("%w: negative surcharge on %s/%s", ErrInvalidLine, o.GroupKey, o.ItemKey)
		}
	}
	return nil
}

type Cart struct {
	lines []model.LineItem
}

// New rebuilds a cart from client-held lines. Keys are re-derived and lines
// sharing a key are merged in first-seen order.
func New(lines []model.LineItem) (*Cart, error) {
	c := &Cart{}
	for _, l := range lines {
		if err := c.Add(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add merges l into an existing line with the same key, keeping that line's
// snapshot and summing quantities, or appends it. The cart is unchanged when
// the result would exceed MaxQuantity or overflow the subtotal.
func (c *Cart) Add(l model.LineItem) error {
	if err := validate(l); err != nil {
		return err
	}
	l.Key = KeyOf(l)

	next := make([]model.LineItem, len(c.lines), len(c.lines)+1)
	copy(next, c.lines)
	merged := false
	for i := range next {
		if next[i].Key == l.Key {
			next[i].Quantity += l.Quantity
			if err := validate(next[i]); err != nil {
				return err
			}
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, l)
	}
	if _, err := pricing.CheckedSubtotal(next); err != nil {
		return fmt.Errorf("%w: subtotal %v", ErrInvalidLine, err)
	}
	c.lines = next
	return nil
}

// AddAll adds each line independently, so units customized differently stay
// on separate lines. On error no line is added.
func (c *Cart) AddAll(lines ...model.LineItem) error {
	next := &Cart{lines: c.Lines()}
	for _, l := range lines {
		if err := next.Add(l); err != nil {
			return err
		}
	}
	c.lines = next.lines
	return nil
}

// Remove drops the line with key, preserving the order of the rest.
func (c *Cart) Remove(key string) bool {
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []model.LineItem {
	out := make([]model.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Subtotal() int64 {
	return pricing.Subtotal(c.lines)
}

// Units is the total quantity across lines.
func (c *Cart) Units() int64 {
	var n int64
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
