package ports

import (
	"context"

	"github.com/ecoagua/storefront/internal/core/domain"
)

// SessionStore persists session state keyed by session id.
type SessionStore interface {
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Save writes the session and refreshes its expiry.
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}
