package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ecoagua/storefront/internal/core/domain"
)

// CartView is the read model rendered on the cart page.
type CartView struct {
	Lines     []domain.CartLine
	Total     decimal.Decimal
	ItemCount int
}

// CartService applies cart operations to a session and persists the result.
type CartService interface {
	AddItem(ctx context.Context, sess *domain.Session, productID int64, quantity int) error
	RemoveItem(ctx context.Context, sess *domain.Session, productID int64) error
	UpdateQuantity(ctx context.Context, sess *domain.Session, productID int64, quantity int) error
	GetCart(sess *domain.Session) CartView
}

// CatalogService lists products for the storefront.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
