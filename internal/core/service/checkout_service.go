package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
	"github.com/ecoagua/storefront/internal/pkg/metrics"
)

type checkoutService struct {
	sessions  ports.SessionStore
	receipts  ports.ReceiptSink
	clearCart bool
	log       zerolog.Logger
}

// NewCheckoutService returns a CheckoutService. When clearCart is set the
// cart is emptied after an approved checkout; otherwise it is left intact.
// receipts may be nil.
func NewCheckoutService(
	sessions ports.SessionStore,
	receipts ports.ReceiptSink,
	clearCart bool,
	log zerolog.Logger,
) ports.CheckoutService {
	return &checkoutService{
		sessions:  sessions,
		receipts:  receipts,
		clearCart: clearCart,
		log:       log,
	}
}

// Attempt runs the checkout gate. Only store failures while clearing the
// cart are returned as errors; the gate decision itself never fails.
func (s *checkoutService) Attempt(ctx context.Context, sess *domain.Session) (domain.CheckoutResult, error) {
	res := domain.AttemptCheckout(sess)
	metrics.CheckoutAttemptsTotal.WithLabelValues(string(res.Outcome)).Inc()

	if !res.Approved() {
		s.log.Debug().Str("session", sess.ID).Msg("checkout refused: not logged in")
		return res, nil
	}

	if s.receipts != nil {
		s.receipts.Submit(domain.CheckoutReceipt{
			SessionID:   sess.ID,
			UserID:      sess.User.ID,
			Lines:       res.Lines,
			Total:       res.Total,
			CompletedAt: time.Now().UTC(),
		})
	}

	if s.clearCart && !sess.Cart.IsEmpty() {
		next := *sess
		next.Cart = sess.Cart.Clear()
		if err := s.sessions.Save(ctx, &next); err != nil {
			return res, fmt.Errorf("checkout: clear cart: %w", err)
		}
		next.IsNew = false
		*sess = next
	}

	s.log.Info().
		Str("session", sess.ID).
		Str("user_id", sess.User.ID).
		Str("total", res.Total.StringFixed(2)).
		Msg("checkout approved")
	return res, nil
}
