package mailqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/metrics"
)

func newTestQueue(t *testing.T, tr Transport, size int) (*Queue, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(tr, Config{Size: size, SendTimeout: time.Second}, log, m), m
}

// startWorker runs q in the background and stops it on cleanup.
func startWorker(t *testing.T, q *Queue) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func email(n int) domain.Email {
	return domain.Email{To: fmt.Sprintf("user%d@example.com", n), Subject: fmt.Sprintf("msg-%d", n)}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestQueue_DeliversInOrderOneAtATime(t *testing.T) {
	t.Parallel()

	var inFlight, maxInFlight atomic.Int32
	tr := &transportMock{
		SendFunc: func(_ context.Context, msg domain.Email) (domain.Receipt, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				cur := maxInFlight.Load()
				if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			return domain.Receipt{MessageID: msg.Subject}, nil
		},
	}
	q, m := newTestQueue(t, tr, 50)

	const total = 20
	pendings := make([]*Pending, 0, total)
	for i := range total {
		p, err := q.Enqueue(context.Background(), email(i))
		require.NoError(t, err)
		pendings = append(pendings, p)
	}

	startWorker(t, q)

	for i, p := range pendings {
		receipt, err := p.Wait(waitCtx(t))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("msg-%d", i), receipt.MessageID)
		assert.Equal(t, domain.EmailSent, p.Status())
	}

	calls := tr.SendCalls()
	require.Len(t, calls, total)
	for i, c := range calls {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), c.Subject, "delivery order")
	}
	assert.Equal(t, int32(1), maxInFlight.Load(), "at most one send in flight")
	assert.Equal(t, float64(total), testutil.ToFloat64(m.EmailsSent))
}

func TestQueue_FailureDoesNotBlockNext(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("smtp: 550 mailbox unavailable")
	tr := &transportMock{
		SendFunc: func(_ context.Context, msg domain.Email) (domain.Receipt, error) {
			if msg.Subject == "msg-0" {
				return domain.Receipt{}, sendErr
			}
			return domain.Receipt{MessageID: "ok"}, nil
		},
	}
	q, m := newTestQueue(t, tr, 10)
	startWorker(t, q)

	first, err := q.Enqueue(context.Background(), email(0))
	require.NoError(t, err)
	second, err := q.Enqueue(context.Background(), email(1))
	require.NoError(t, err)

	_, err = first.Wait(waitCtx(t))
	require.ErrorIs(t, err, sendErr)
	assert.Equal(t, domain.EmailFailed, first.Status())

	receipt, err := second.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", receipt.MessageID)

	assert.Len(t, tr.SendCalls(), 2, "failed email must not be retried")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsFailed))
}

func TestQueue_Enqueue_FullReturnsImmediately(t *testing.T) {
	t.Parallel()

	q, m := newTestQueue(t, &transportMock{}, 2)

	for i := range 2 {
		_, err := q.Enqueue(context.Background(), email(i))
		require.NoError(t, err)
	}

	_, err := q.Enqueue(context.Background(), email(2))
	require.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EmailsRejected))
}

func TestQueue_Enqueue_Validation(t *testing.T) {
	t.Parallel()

	q, _ := newTestQueue(t, &transportMock{}, 2)

	_, err := q.Enqueue(context.Background(), domain.Email{Subject: "no recipient"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_SendTimeout(t *testing.T) {
	t.Parallel()

	tr := &transportMock{
		SendFunc: func(ctx context.Context, _ domain.Email) (domain.Receipt, error) {
			<-ctx.Done()
			return domain.Receipt{}, ctx.Err()
		},
	}
	m := metrics.New(prometheus.NewRegistry())
	q := New(tr, Config{Size: 4, SendTimeout: 50 * time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)), m)
	startWorker(t, q)

	hung, err := q.Enqueue(context.Background(), email(0))
	require.NoError(t, err)
	next, err := q.Enqueue(context.Background(), email(1))
	require.NoError(t, err)

	_, err = hung.Wait(waitCtx(t))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The worker moves on after the timeout.
	select {
	case <-next.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("second email was never attempted")
	}
}

func TestQueue_ShutdownResolvesBuffered(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	tr := &transportMock{
		SendFunc: func(_ context.Context, _ domain.Email) (domain.Receipt, error) {
			<-release
			return domain.Receipt{MessageID: "late"}, nil
		},
	}
	q, _ := newTestQueue(t, tr, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	inFlight, err := q.Enqueue(context.Background(), email(0))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(tr.SendCalls()) == 1 }, 2*time.Second, 5*time.Millisecond)

	buffered, err := q.Enqueue(context.Background(), email(1))
	require.NoError(t, err)

	cancel()
	close(release)

	require.NoError(t, <-done)

	receipt, err := inFlight.Wait(waitCtx(t))
	require.NoError(t, err, "in-flight send completes on shutdown")
	assert.Equal(t, "late", receipt.MessageID)

	_, err = buffered.Wait(waitCtx(t))
	require.ErrorIs(t, err, ErrQueueClosed)

	_, err = q.Enqueue(context.Background(), email(2))
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueue_RunTwice(t *testing.T) {
	t.Parallel()

	q, _ := newTestQueue(t, &transportMock{}, 1)
	startWorker(t, q)

	require.Eventually(t, func() bool { return q.running.Load() }, time.Second, time.Millisecond)
	require.ErrorIs(t, q.Run(context.Background()), ErrAlreadyRunning)
}

func TestPending_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	p := newPending()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.EmailPending, p.Status())
}
