package mailqueue

import (
	"context"
	"sync/atomic"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// Pending is the caller's handle on a queued email. It resolves exactly once.
type Pending struct {
	done    chan struct{}
	status  atomic.Value // domain.EmailStatus
	receipt domain.Receipt
	err     error
}

func newPending() *Pending {
	p := &Pending{done: make(chan struct{})}
	p.status.Store(domain.EmailPending)
	return p
}

func (p *Pending) resolve(receipt domain.Receipt, err error) {
	p.receipt = receipt
	p.err = err
	if err != nil {
		p.status.Store(domain.EmailFailed)
	} else {
		p.status.Store(domain.EmailSent)
	}
	close(p.done)
}

// Done is closed once delivery has been attempted.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Status reports pending, sent or failed.
func (p *Pending) Status() domain.EmailStatus {
	return p.status.Load().(domain.EmailStatus)
}

// Wait blocks until the email is resolved or ctx ends. Returning early on
// ctx does not cancel delivery.
func (p *Pending) Wait(ctx context.Context) (domain.Receipt, error) {
	select {
	case <-p.done:
		return p.receipt, p.err
	case <-ctx.Done():
		return domain.Receipt{}, ctx.Err()
	}
}
