package service

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ecoagua/storefront/internal/core/domain"
)

var testLog = zerolog.New(io.Discard)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSessions struct {
	saved   map[string]domain.Session
	deleted []string
	saveErr error
	delErr  error
}

func newStubSessions() *stubSessions {
	return &stubSessions{saved: make(map[string]domain.Session)}
}

func (s *stubSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.saved[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *stubSessions) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[sess.ID] = *sess
	return nil
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.saved, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubProducts struct {
	items   map[int64]domain.Product
	listErr error
	limit   int
}

func (r *stubProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *stubProducts) List(_ context.Context, limit int) ([]domain.Product, error) {
	r.limit = limit
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

type stubSink struct {
	mu       sync.Mutex
	receipts []domain.CheckoutReceipt
}

func (s *stubSink) Submit(r domain.CheckoutReceipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
}
