package redis

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecoagua/storefront/internal/core/domain"
)

const defaultDedupWindow = time.Minute

// ReceiptDedup suppresses repeated receipts for the same cart, e.g. when a
// customer double-submits the checkout form.
// Key format: dedup:receipt:<session_id>:<cart_fingerprint>
type ReceiptDedup struct {
	client *redis.Client
	window time.Duration
}

// NewReceiptDedup creates a ReceiptDedup. A non-positive window falls back
// to defaultDedupWindow.
func NewReceiptDedup(client *redis.Client, window time.Duration) *ReceiptDedup {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &ReceiptDedup{client: client, window: window}
}

// Claim marks the receipt as seen and reports whether this is the first
// time it was seen inside the window.
func (d *ReceiptDedup) Claim(ctx context.Context, receipt *domain.CheckoutReceipt) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(receipt), "1", d.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return ok, nil
}

func (d *ReceiptDedup) key(receipt *domain.CheckoutReceipt) string {
	return fmt.Sprintf("dedup:receipt:%s:%x", receipt.SessionID, fingerprint(receipt))
}

func fingerprint(receipt *domain.CheckoutReceipt) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s", receipt.UserID, receipt.Total.String())
	for _, l := range receipt.Lines {
		_, _ = fmt.Fprintf(h, "|%d:%d:%s", l.ProductID, l.Quantity, l.Price.String())
	}
	return h.Sum64()
}
