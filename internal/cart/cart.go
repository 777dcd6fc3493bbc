package cart

import (
	"github.com/google/uuid"

	"github.com/example/cashwave/internal/models"
)

// Line is one product entry in a cart, with the title, price and icon
// denormalized at add time. Quantity is always >= 1; lines that would
// drop to zero are removed instead.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// Cart is a session's line items, keyed by product ID. Lines keep
// insertion order, though nothing depends on it.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges a product into the cart: an existing line gains quantity,
// otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(product *models.Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity++
			return
		}
	}

	c.Lines = append(c.Lines, Line{
		ProductID: product.ID,
		Title:     product.Title,
		Icon:      product.Icon,
		UnitPrice: product.Price,
		Quantity:  1,
	})
}

// Remove deletes the line for the given product. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// AdjustQuantity applies delta to a line's quantity, deleting the line
// when the result is zero or below.
func (c *Cart) AdjustQuantity(productID uuid.UUID, delta int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += delta
			if c.Lines[i].Quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			}
			return
		}
	}
}

// Total sums unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Count is the total item quantity, used for the cart badge.
func (c *Cart) Count() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
