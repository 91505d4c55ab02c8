package ports

import (
	"context"

	"github.com/ecoagua/storefront/internal/core/domain"
)

// CheckoutService runs the checkout gate for a session.
type CheckoutService interface {
	Attempt(ctx context.Context, sess *domain.Session) (domain.CheckoutResult, error)
}

// CheckoutRepository stores receipts of approved checkouts.
type CheckoutRepository interface {
	InsertReceipt(ctx context.Context, receipt *domain.CheckoutReceipt) error
}

// ReceiptSink accepts receipts for asynchronous persistence.
type ReceiptSink interface {
	Submit(receipt domain.CheckoutReceipt)
}
