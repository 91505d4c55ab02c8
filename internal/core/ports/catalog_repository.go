package ports

import (
	"context"

	"github.com/ecoagua/storefront/internal/core/domain"
)

// ProductRepository is the read side of the product catalog.
type ProductRepository interface {
	// FindByID returns domain.ErrProductNotFound when no product has the id.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, limit int) ([]domain.Product, error)
}
