// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Line is one cart entry. Identity is (ProductID, VariantID); two adds
// with the same identity merge into one line.
type Line struct {
	ProductID string    `json:"product_id"`
	VariantID string    `json:"variant_id,omitempty"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // minor units, captured at add time
	Quantity  int       `json:"quantity"`
	Variant   string    `json:"variant,omitempty"`
	Addition  string    `json:"addition,omitempty"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Key returns the merge identity of the line
func (l *Line) Key() string {
	return LineKey(l.ProductID, l.VariantID)
}

// LineKey builds the merge identity for a product/variant pair
func LineKey(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + ":" + variantID
}

// TerminalCart is the cart for one terminal session, stored in Redis
type TerminalCart struct {
	TerminalID string    `json:"terminal_id"`
	Lines      []Line    `json:"lines"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsEmpty reports whether the cart has no lines
func (c *TerminalCart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums the quantities of all lines
func (c *TerminalCart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// add merges the line into the cart by identity. Quantity <= 0 is a
// no-op; callers are expected to pass quantity >= 1.
func (c *TerminalCart) add(line Line) {
	if line.Quantity <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Key() == line.Key() {
			c.Lines[i].Quantity += line.Quantity
			c.Lines[i].UnitPrice = line.UnitPrice // price may have changed since first add
			c.touch()
			return
		}
	}
	line.AddedAt = time.Now().UTC()
	c.Lines = append(c.Lines, line)
	c.touch()
}

// setQuantity sets a line's quantity directly. Zero or negative removes
// the line. Returns false if no line matches the key.
func (c *TerminalCart) setQuantity(key string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			if quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = quantity
			}
			c.touch()
			return true
		}
	}
	return false
}

// remove deletes a line by key; absent keys are a no-op
func (c *TerminalCart) remove(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
	}
}

// clear empties the cart unconditionally
func (c *TerminalCart) clear() {
	c.Lines = []Line{}
	c.touch()
}

func (c *TerminalCart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
