package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. It is read-only from the cart's perspective.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
}
