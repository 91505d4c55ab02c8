package mongo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ecoagua/storefront/internal/core/domain"
)

// DefaultCatalog is written by SeedCatalog on fresh installs.
var DefaultCatalog = []domain.Product{
	{ID: 1, Name: "Rain barrel 200L", Description: "Food-grade rain barrel with tap and overflow valve.", Price: decimal.RequireFromString("89.90")},
	{ID: 2, Name: "Drip irrigation kit", Description: "Twenty emitters and 15 m of tubing for garden beds.", Price: decimal.RequireFromString("34.50")},
	{ID: 3, Name: "Low-flow shower head", Description: "Saves up to 40% of water per shower.", Price: decimal.RequireFromString("24.99")},
	{ID: 4, Name: "Faucet aerator (pack of 4)", Description: "Screw-on aerators for kitchen and bathroom taps.", Price: decimal.RequireFromString("12.00")},
	{ID: 5, Name: "Carbon water filter", Description: "Countertop filter with replaceable cartridge.", Price: decimal.RequireFromString("59.00")},
}

// ProductWriter is implemented by ProductRepository.
type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) error
}

// SeedCatalog upserts products by id, so running it twice is harmless.
func SeedCatalog(ctx context.Context, w ProductWriter, products []domain.Product) error {
	for _, p := range products {
		if err := w.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return nil
}
