// Package mailqueue serializes outbound email through a single delivery worker.
//
// Callers enqueue without blocking and receive a Pending handle that resolves
// once the worker has attempted delivery. The worker takes items in FIFO order
// and keeps at most one send in flight; a failed send is reported to its
// caller and is not retried.
package mailqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/metrics"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer is at capacity.
	ErrQueueFull = errors.New("mail queue is full")
	// ErrQueueClosed is returned by Enqueue after shutdown and used to
	// resolve items that were still buffered when the worker stopped.
	ErrQueueClosed = errors.New("mail queue is closed")
	// ErrStillPending is reported when a caller stops waiting before the
	// email is resolved. Delivery continues in the background.
	ErrStillPending = errors.New("email still pending")
	// ErrAlreadyRunning is returned by a second concurrent Run.
	ErrAlreadyRunning = errors.New("mail queue worker already running")
)

// Transport delivers a single message.
type Transport interface {
	Send(ctx context.Context, msg domain.Email) (domain.Receipt, error)
}

// Config holds queue settings.
type Config struct {
	Size        int
	SendTimeout time.Duration
}

type item struct {
	email      domain.Email
	pending    *Pending
	enqueuedAt time.Time
}

// Queue is a bounded FIFO of emails drained by Run.
type Queue struct {
	items       chan item
	transport   Transport
	sendTimeout time.Duration
	log         *slog.Logger
	metrics     *metrics.Metrics

	mu      sync.RWMutex
	closed  bool
	running atomic.Bool
}

// New creates a queue. Run must be started for anything to be delivered.
func New(transport Transport, cfg Config, log *slog.Logger, m *metrics.Metrics) *Queue {
	return &Queue{
		items:       make(chan item, cfg.Size),
		transport:   transport,
		sendTimeout: cfg.SendTimeout,
		log:         log.With("component", "mailqueue"),
		metrics:     m,
	}
}

// Enqueue appends email to the queue without blocking.
func (q *Queue) Enqueue(ctx context.Context, email domain.Email) (*Pending, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.EmailsRejected.Inc()
		return nil, ErrQueueClosed
	}

	p := newPending()
	select {
	case q.items <- item{email: email, pending: p, enqueuedAt: time.Now()}:
	default:
		q.metrics.EmailsRejected.Inc()
		q.log.WarnContext(ctx, "mail queue full, rejecting email",
			slog.String("to", email.To),
			slog.Int("capacity", cap(q.items)),
		)
		return nil, ErrQueueFull
	}

	q.metrics.EmailsEnqueued.Inc()
	q.metrics.EmailQueueDepth.Set(float64(len(q.items)))
	q.log.DebugContext(ctx, "email enqueued", slog.String("to", email.To), slog.Int("depth", len(q.items)))

	return p, nil
}

// Len returns the number of emails waiting for delivery.
func (q *Queue) Len() int {
	return len(q.items)
}

// Run is the delivery worker. It blocks until ctx is done, then resolves
// every still-buffered item with ErrQueueClosed. An in-flight send is allowed
// to finish within the send timeout.
func (q *Queue) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer q.running.Store(false)

	q.log.InfoContext(ctx, "mail worker started",
		slog.Int("capacity", cap(q.items)),
		slog.Duration("send_timeout", q.sendTimeout),
	)

	for {
		// Checked first so a cancelled worker never picks another buffered item.
		if ctx.Err() != nil {
			n := q.shutdown()
			q.log.Info("mail worker stopped", slog.Int("dropped", n))
			return nil
		}

		select {
		case <-ctx.Done():
		case it := <-q.items:
			q.deliver(ctx, it)
		}
	}
}

func (q *Queue) deliver(ctx context.Context, it item) {
	q.metrics.EmailQueueDepth.Set(float64(len(q.items)))

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.sendTimeout)
	defer cancel()

	start := time.Now()
	receipt, err := q.transport.Send(sendCtx, it.email)
	elapsed := time.Since(start)
	q.metrics.ObserveSend(elapsed, err)

	if err != nil {
		q.log.ErrorContext(ctx, "email delivery failed",
			slog.String("to", it.email.To),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		it.pending.resolve(domain.Receipt{}, fmt.Errorf("deliver email: %w", err))
		return
	}

	q.log.InfoContext(ctx, "email delivered",
		slog.String("to", it.email.To),
		slog.String("message_id", receipt.MessageID),
		slog.Duration("duration", elapsed),
		slog.Duration("queued_for", start.Sub(it.enqueuedAt)),
	)
	it.pending.resolve(receipt, nil)
}

// shutdown stops accepting new items and fails whatever is still buffered.
func (q *Queue) shutdown() int {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	n := 0
	for {
		select {
		case it := <-q.items:
			it.pending.resolve(domain.Receipt{}, ErrQueueClosed)
			n++
		default:
			q.metrics.EmailQueueDepth.Set(0)
			return n
		}
	}
}
