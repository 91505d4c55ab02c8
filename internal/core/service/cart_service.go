package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
	"github.com/ecoagua/storefront/internal/pkg/metrics"
)

const defaultProductPageSize = 10

// CartService loads the session's cart, applies one domain operation and
// writes the session back. Concurrent requests on the same session are not
// serialised: the last save wins.
type CartService struct {
	products ports.ProductRepository
	sessions ports.SessionStore
	pageSize int
	log      zerolog.Logger
}

func NewCartService(products ports.ProductRepository, sessions ports.SessionStore, pageSize int, log zerolog.Logger) *CartService {
	if pageSize <= 0 {
		pageSize = defaultProductPageSize
	}
	return &CartService{products: products, sessions: sessions, pageSize: pageSize, log: log}
}

// ListProducts returns the first page of the catalog.
func (s *CartService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AddItem snapshots the product into the cart, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, sess *domain.Session, productID int64, quantity int) error {
	if quantity < 1 {
		metrics.CartOperationsTotal.WithLabelValues("add", "invalid").Inc()
		return fmt.Errorf("add to cart: quantity %d: %w", quantity, domain.ErrInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", resultLabel(err)).Inc()
		return fmt.Errorf("add to cart: %w", err)
	}

	cart, err := sess.Cart.AddItem(*product, quantity)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", "invalid").Inc()
		return err
	}

	if err := s.persist(ctx, sess, cart); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", "error").Inc()
		return fmt.Errorf("add to cart: %w", err)
	}

	metrics.CartOperationsTotal.WithLabelValues("add", "ok").Inc()
	s.log.Debug().
		Str("session", sess.ID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")
	return nil
}

// RemoveItem drops the product's line. Removing something that is not in
// the cart succeeds without writing.
func (s *CartService) RemoveItem(ctx context.Context, sess *domain.Session, productID int64) error {
	before := len(sess.Cart.Lines)
	cart := sess.Cart.RemoveItem(productID)
	if len(cart.Lines) == before {
		metrics.CartOperationsTotal.WithLabelValues("remove", "ok").Inc()
		return nil
	}

	if err := s.persist(ctx, sess, cart); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("remove", "error").Inc()
		return fmt.Errorf("remove from cart: %w", err)
	}

	metrics.CartOperationsTotal.WithLabelValues("remove", "ok").Inc()
	s.log.Debug().Str("session", sess.ID).Int64("product_id", productID).Msg("item removed from cart")
	return nil
}

// UpdateQuantity sets the quantity of an existing line; zero removes it.
// Updating a product that is not in the cart succeeds without writing.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *domain.Session, productID int64, quantity int) error {
	cart, err := sess.Cart.UpdateQuantity(productID, quantity)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("update", "invalid").Inc()
		return err
	}
	if !sess.Cart.Has(productID) {
		metrics.CartOperationsTotal.WithLabelValues("update", "ok").Inc()
		return nil
	}

	if err := s.persist(ctx, sess, cart); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("update", "error").Inc()
		return fmt.Errorf("update cart: %w", err)
	}

	metrics.CartOperationsTotal.WithLabelValues("update", "ok").Inc()
	return nil
}

// GetCart returns the session's lines and total without side effects.
func (s *CartService) GetCart(sess *domain.Session) ports.CartView {
	return ports.CartView{
		Lines:     sess.Cart.Lines,
		Total:     sess.Cart.Total(),
		ItemCount: sess.Cart.ItemCount(),
	}
}

// persist stores cart on the session. The in-memory session is only
// updated once the store accepted the write.
func (s *CartService) persist(ctx context.Context, sess *domain.Session, cart domain.Cart) error {
	next := *sess
	next.Cart = cart
	if err := s.sessions.Save(ctx, &next); err != nil {
		return err
	}
	sess.Cart = cart
	sess.IsNew = false
	return nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
