package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/ports"
	"github.com/ecoagua/storefront/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Deduper reports whether a receipt is seen for the first time.
type Deduper interface {
	Claim(ctx context.Context, receipt *domain.CheckoutReceipt) (bool, error)
}

// Dispatcher hands checkout receipts to a fixed set of workers that write
// them to the checkout repository. Receipts from one session always land on
// the same worker, so they are stored in submission order.
//
// Submit never blocks: a receipt that finds its worker's buffer full, or
// arrives after Stop, is logged and counted as dropped.
type Dispatcher struct {
	workers []chan domain.CheckoutReceipt
	repo    ports.CheckoutRepository
	dedup   Deduper
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. dedup may be nil.
func NewDispatcher(numWorkers int, repo ports.CheckoutRepository, dedup Deduper, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.CheckoutReceipt, numWorkers),
		repo:    repo,
		dedup:   dedup,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.CheckoutReceipt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Cancelling ctx does not stop them:
// writes keep ctx's values but not its cancellation, and workers run until
// Stop has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop refuses further receipts, lets the workers store everything already
// queued and waits for them. It returns ctx's error if the drain outlasts ctx.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("receipt dispatcher drain: %w", ctx.Err())
	}
}

// Submit queues a receipt on the worker owning its session.
func (d *Dispatcher) Submit(receipt domain.CheckoutReceipt) {
	idx := d.shardIndex(receipt.SessionID)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(receipt, idx, "dispatcher stopped")
		return
	}
	select {
	case d.workers[idx] <- receipt:
		metrics.ReceiptQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(receipt, idx, "worker queue full")
	}
}

func (d *Dispatcher) drop(receipt domain.CheckoutReceipt, idx int, reason string) {
	metrics.ReceiptsTotal.WithLabelValues("dropped").Inc()
	d.log.Error().
		Str("session", receipt.SessionID).
		Str("user_id", receipt.UserID).
		Str("total", receipt.Total.String()).
		Int("worker_id", idx).
		Msg("receipt dropped: " + reason)
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.CheckoutReceipt) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for receipt := range ch {
		metrics.ReceiptQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if d.isDuplicate(ctx, &receipt) {
			metrics.ReceiptsTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		if err := d.repo.InsertReceipt(ctx, &receipt); err != nil {
			metrics.ReceiptsTotal.WithLabelValues("error").Inc()
			d.log.Error().Err(err).
				Str("session", receipt.SessionID).
				Int("worker_id", id).
				Msg("receipt persistence failed")
			continue
		}
		metrics.ReceiptsTotal.WithLabelValues("stored").Inc()
	}
}

// isDuplicate consults the deduper. A failing deduper lets the receipt
// through: a duplicate audit row is preferable to a lost one.
func (d *Dispatcher) isDuplicate(ctx context.Context, receipt *domain.CheckoutReceipt) bool {
	if d.dedup == nil {
		return false
	}
	first, err := d.dedup.Claim(ctx, receipt)
	if err != nil {
		d.log.Warn().Err(err).Str("session", receipt.SessionID).Msg("receipt dedup unavailable")
		return false
	}
	return !first
}
