package ports

import (
	"context"

	"github.com/ecoagua/storefront/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies the credentials and signs the user into sess. The
	// session id is rotated on success.
	Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.User, error)
	Logout(ctx context.Context, sess *domain.Session) error
}
