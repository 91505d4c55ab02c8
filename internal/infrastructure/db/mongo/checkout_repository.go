package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
)

const collectionCheckouts = "checkouts"

// CheckoutRepository implements ports.CheckoutRepository using MongoDB.
type CheckoutRepository struct {
	col *mongo.Collection
}

// NewCheckoutRepository creates a new CheckoutRepository.
func NewCheckoutRepository(db *mongo.Database) ports.CheckoutRepository {
	return &CheckoutRepository{col: db.Collection(collectionCheckouts)}
}

// InsertReceipt persists a receipt to the checkouts audit collection.
func (r *CheckoutRepository) InsertReceipt(ctx context.Context, receipt *domain.CheckoutReceipt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := primitive.ParseDecimal128(receipt.Total.String())
	if err != nil {
		return fmt.Errorf("encode total: %w", err)
	}

	lines := make(bson.A, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		price, err := primitive.ParseDecimal128(l.Price.String())
		if err != nil {
			return fmt.Errorf("encode price: %w", err)
		}
		lines = append(lines, bson.M{
			"product_id": l.ProductID,
			"name":       l.Name,
			"price":      price,
			"quantity":   l.Quantity,
		})
	}

	doc := bson.M{
		"session_id":   receipt.SessionID,
		"user_id":      receipt.UserID,
		"lines":        lines,
		"total":        total,
		"completed_at": receipt.CompletedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert receipt: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
