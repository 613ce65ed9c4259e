package mailqueue

import (
	"context"
	"sync"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// transportMock is a hand-written mock of Transport in the moq style.
type transportMock struct {
	SendFunc func(ctx context.Context, msg domain.Email) (domain.Receipt, error)

	mu    sync.RWMutex
	calls []domain.Email
}

func (m *transportMock) Send(ctx context.Context, msg domain.Email) (domain.Receipt, error) {
	m.mu.Lock()
	m.calls = append(m.calls, msg)
	m.mu.Unlock()
	if m.SendFunc == nil {
		return domain.Receipt{MessageID: "<" + msg.Subject + "@test>"}, nil
	}
	return m.SendFunc(ctx, msg)
}

func (m *transportMock) SendCalls() []domain.Email {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Email(nil), m.calls...)
}
