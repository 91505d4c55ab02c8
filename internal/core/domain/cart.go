package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is a snapshot of a product taken when it was added, plus the
// quantity the customer wants.
type CartLine struct {
	ProductID   int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MaxLineQuantity caps the units a single cart line may hold.
const MaxLineQuantity = 999

// Cart is the ordered set of lines held by a session. At most one line
// exists per product id.
//
// Every operation returns a new Cart and leaves the receiver untouched, so
// a cart loaded from the session store is only replaced once the caller
// decides to persist the result.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// AddItem merges quantity units of p into the cart. An existing line for
// p.ID keeps its original snapshot and only grows in quantity. The merged
// quantity may not exceed MaxLineQuantity.
func (c Cart) AddItem(p Product, quantity int) (Cart, error) {
	if quantity < 1 || quantity > MaxLineQuantity {
		return c, fmt.Errorf("add item: quantity %d: %w", quantity, ErrInvalidInput)
	}

	lines := c.clone()
	if i := c.indexOf(p.ID); i >= 0 {
		if quantity > MaxLineQuantity-lines[i].Quantity {
			return c, fmt.Errorf("add item: quantity %d over line limit %d: %w",
				lines[i].Quantity+quantity, MaxLineQuantity, ErrInvalidInput)
		}
		lines[i].Quantity += quantity
		return Cart{Lines: lines}, nil
	}

	lines = append(lines, CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Quantity:    quantity,
	})
	return Cart{Lines: lines}, nil
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (c Cart) RemoveItem(productID int64) Cart {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID != productID {
			lines = append(lines, l)
		}
	}
	return Cart{Lines: lines}
}

// UpdateQuantity sets the quantity of an existing line. Zero removes the
// line. Negative quantities and quantities above MaxLineQuantity are
// rejected. An unknown productID leaves the cart as it was.
func (c Cart) UpdateQuantity(productID int64, quantity int) (Cart, error) {
	if quantity < 0 || quantity > MaxLineQuantity {
		return c, fmt.Errorf("update quantity: quantity %d: %w", quantity, ErrInvalidInput)
	}

	i := c.indexOf(productID)
	if i < 0 {
		return c, nil
	}
	if quantity == 0 {
		return c.RemoveItem(productID), nil
	}

	lines := c.clone()
	lines[i].Quantity = quantity
	return Cart{Lines: lines}, nil
}

// Total is the sum of price × quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Has reports whether the cart holds a line for productID.
func (c Cart) Has(productID int64) bool {
	return c.indexOf(productID) >= 0
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) indexOf(productID int64) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() []CartLine {
	lines := make([]CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)
	return lines
}
