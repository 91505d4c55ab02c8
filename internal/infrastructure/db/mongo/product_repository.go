package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecoagua/storefront/internal/core/domain"
)

const collectionProducts = "products"

// ProductRepository implements ports.ProductRepository using MongoDB.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoProduct struct {
	ID          int64                `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	ImageURL    string               `bson:"image_url,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
}

// FindByID retrieves a product by its numeric id.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w: %w", domain.ErrStoreUnavailable, err)
	}

	p, err := mp.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns up to limit products ordered by id.
func (r *ProductRepository) List(ctx context.Context, limit int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	products := make([]domain.Product, 0, limit)
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p, err := mp.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return products, nil
}

// Upsert writes p, replacing any product with the same id. Used for seeding.
func (r *ProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return fmt.Errorf("encode price: %w", err)
	}
	doc := mongoProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       price,
	}

	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert product: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (mp mongoProduct) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(mp.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("decode price of product %d: %w", mp.ID, err)
	}
	return domain.Product{
		ID:          mp.ID,
		Name:        mp.Name,
		Description: mp.Description,
		ImageURL:    mp.ImageURL,
		Price:       price,
	}, nil
}
