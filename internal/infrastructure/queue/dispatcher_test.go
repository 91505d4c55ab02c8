package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoagua/storefront/internal/core/domain"
)

type recordingRepo struct {
	mu        sync.Mutex
	receipts  []domain.CheckoutReceipt
	failFirst int
	delay     time.Duration
	gate      chan struct{}
}

func (r *recordingRepo) InsertReceipt(ctx context.Context, receipt *domain.CheckoutReceipt) error {
	if r.gate != nil {
		<-r.gate
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFirst > 0 {
		r.failFirst--
		return domain.ErrStoreUnavailable
	}
	r.receipts = append(r.receipts, *receipt)
	return nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.receipts)
}

func (r *recordingRepo) sessionOrder(sessionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var totals []string
	for _, rc := range r.receipts {
		if rc.SessionID == sessionID {
			totals = append(totals, rc.Total.String())
		}
	}
	return totals
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (m *memDedup) Claim(_ context.Context, receipt *domain.CheckoutReceipt) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := receipt.SessionID + receipt.Total.String()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

// startDispatcher starts d and stops it when the test ends.
func startDispatcher(t *testing.T, d *Dispatcher) {
	t.Helper()
	d.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.Stop(ctx)
	})
}

func receipt(session string, total int64) domain.CheckoutReceipt {
	return domain.CheckoutReceipt{SessionID: session, UserID: "u1", Total: decimal.NewFromInt(total), CompletedAt: time.Now()}
}

func TestDispatcher_StoresReceiptsInSessionOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(3, repo, nil, zerolog.New(io.Discard))
	startDispatcher(t, d)

	for i := int64(1); i <= 5; i++ {
		d.Submit(receipt("s1", i))
		d.Submit(receipt("s2", i*10))
	}

	require.Eventually(t, func() bool { return repo.count() == 10 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, repo.sessionOrder("s1"))
	assert.Equal(t, []string{"10", "20", "30", "40", "50"}, repo.sessionOrder("s2"))
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, nil, zerolog.New(io.Discard))
	assert.Len(t, d.workers, defaultWorkers)
	idx := d.shardIndex("session-42")
	for i := 0; i < 10; i++ {
		assert.Equal(t, idx, d.shardIndex("session-42"))
	}
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, defaultWorkers)
}

func TestDispatcher_SkipsDuplicates(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, &memDedup{seen: map[string]bool{}}, zerolog.New(io.Discard))
	startDispatcher(t, d)

	d.Submit(receipt("s1", 20))
	d.Submit(receipt("s1", 20))
	d.Submit(receipt("s1", 30))

	require.Eventually(t, func() bool { return repo.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	// Give the worker a moment to process anything still queued.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"20", "30"}, repo.sessionOrder("s1"))
}

func TestDispatcher_DedupFailureStillStores(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, &memDedup{err: errors.New("redis down")}, zerolog.New(io.Discard))
	startDispatcher(t, d)

	d.Submit(receipt("s1", 20))
	require.Eventually(t, func() bool { return repo.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_RepositoryErrorDoesNotStopWorker(t *testing.T) {
	repo := &recordingRepo{failFirst: 1}
	d := NewDispatcher(1, repo, nil, zerolog.New(io.Discard))
	startDispatcher(t, d)

	d.Submit(receipt("s1", 1))
	d.Submit(receipt("s1", 2))
	require.Eventually(t, func() bool { return repo.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"2"}, repo.sessionOrder("s1"))
}

func TestDispatcher_StopDrainsQueuedReceipts(t *testing.T) {
	repo := &recordingRepo{delay: 5 * time.Millisecond}
	d := NewDispatcher(2, repo, nil, zerolog.New(io.Discard))

	// Cancelling the start context is what a SIGTERM does first.
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	for i := int64(1); i <= 20; i++ {
		d.Submit(receipt("s1", i))
	}
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, d.Stop(stopCtx))
	assert.Equal(t, 20, repo.count())
}

func TestDispatcher_SubmitAfterStopDoesNotBlock(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, nil, zerolog.New(io.Discard))
	d.Start(context.Background())
	require.NoError(t, d.Stop(context.Background()))

	done := make(chan struct{})
	go func() {
		for i := int64(0); i < channelBuffer+1; i++ {
			d.Submit(receipt("s1", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked after Stop")
	}
	assert.Zero(t, repo.count())
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	repo := &recordingRepo{gate: make(chan struct{})}
	d := NewDispatcher(1, repo, nil, zerolog.New(io.Discard))
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := int64(0); i < channelBuffer+10; i++ {
			d.Submit(receipt("s1", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(repo.gate)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	assert.LessOrEqual(t, repo.count(), channelBuffer+1)
	assert.GreaterOrEqual(t, repo.count(), channelBuffer)
}

func TestDispatcher_StopReportsUnfinishedDrain(t *testing.T) {
	repo := &recordingRepo{gate: make(chan struct{})}
	d := NewDispatcher(1, repo, nil, zerolog.New(io.Discard))
	d.Start(context.Background())
	d.Submit(receipt("s1", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)

	close(repo.gate)
	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, 1, repo.count())
}
