package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
	"github.com/ecoagua/storefront/internal/pkg/metrics"
)

// DefaultBcryptCost is the work factor used for password hashes.
const DefaultBcryptCost = 8

// AuthService implements registration, login and logout.
type AuthService struct {
	repo       ports.UserRepository
	sessions   ports.SessionStore
	bcryptCost int
	logoutMode domain.LogoutMode
	log        zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	sessions ports.SessionStore,
	bcryptCost int,
	logoutMode domain.LogoutMode,
	log zerolog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &AuthService{
		repo:       repo,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logoutMode: logoutMode,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, domain.ErrInvalidInput
	}
	if len(password) > domain.MaxPasswordBytes {
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthEventsTotal.WithLabelValues("register", "duplicate").Inc()
		} else {
			metrics.AuthEventsTotal.WithLabelValues("register", "error").Inc()
		}
		return nil, err
	}

	metrics.AuthEventsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.AuthEventsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthEventsTotal.WithLabelValues("login", "not_found").Inc()
		} else {
			metrics.AuthEventsTotal.WithLabelValues("login", "error").Inc()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	// Rotate the id so a pre-login cookie cannot ride the authenticated session.
	next := *sess
	next.ID = uuid.NewString()
	next.SignIn(user)
	if err := s.sessions.Save(ctx, &next); err != nil {
		metrics.AuthEventsTotal.WithLabelValues("login", "error").Inc()
		return nil, err
	}
	if !sess.IsNew {
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			s.log.Warn().Err(err).Str("session", sess.ID).Msg("failed to delete pre-login session")
		}
	}
	next.IsNew = false
	*sess = next

	metrics.AuthEventsTotal.WithLabelValues("login", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// Logout signs the user out according to the configured mode.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	userID := ""
	if sess.User != nil {
		userID = sess.User.ID
	}

	switch s.logoutMode {
	case domain.LogoutKeepCart:
		next := *sess
		next.SignOut()
		if err := s.sessions.Save(ctx, &next); err != nil {
			metrics.AuthEventsTotal.WithLabelValues("logout", "error").Inc()
			return err
		}
		next.IsNew = false
		*sess = next
	default:
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			metrics.AuthEventsTotal.WithLabelValues("logout", "error").Inc()
			return err
		}
		*sess = *domain.NewSession(sess.ID)
	}

	metrics.AuthEventsTotal.WithLabelValues("logout", "ok").Inc()
	s.log.Info().Str("user_id", userID).Str("mode", string(s.logoutMode)).Msg("user logged out")
	return nil
}

// LogoutMode reports the configured logout policy.
func (s *AuthService) LogoutMode() domain.LogoutMode {
	return s.logoutMode
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
