package matching

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
)

var (
	_ foundItemRepo    = &foundItemRepoMock{}
	_ userRepo         = &userRepoMock{}
	_ notificationRepo = &notificationRepoMock{}
	_ notifier         = &notifierMock{}
	_ mailQueue        = &mailQueueMock{}
)

type foundItemRepoMock struct {
	CreateFunc func(ctx context.Context, item *domain.FoundItem) (*domain.FoundItem, error)

	calls struct {
		Create []struct{ Item *domain.FoundItem }
	}
	lockCreate sync.RWMutex
}

func (mock *foundItemRepoMock) Create(ctx context.Context, item *domain.FoundItem) (*domain.FoundItem, error) {
	if mock.CreateFunc == nil {
		panic("foundItemRepoMock.CreateFunc: method is nil but foundItemRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Item *domain.FoundItem }{item})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *foundItemRepoMock) CreateCalls() []struct{ Item *domain.FoundItem } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	calls struct {
		GetByID []struct{ ID uuid.UUID }
	}
	lockGetByID sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	defer mock.lockGetByID.RUnlock()
	return mock.calls.GetByID
}

type notificationRepoMock struct {
	AppendFunc func(ctx context.Context, userID uuid.UUID, message string) (*domain.Notification, error)

	calls struct {
		Append []struct {
			UserID  uuid.UUID
			Message string
		}
	}
	lockAppend sync.RWMutex
}

func (mock *notificationRepoMock) Append(ctx context.Context, userID uuid.UUID, message string) (*domain.Notification, error) {
	if mock.AppendFunc == nil {
		panic("notificationRepoMock.AppendFunc: method is nil but notificationRepo.Append was just called")
	}
	callInfo := struct {
		UserID  uuid.UUID
		Message string
	}{UserID: userID, Message: message}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, userID, message)
}

func (mock *notificationRepoMock) AppendCalls() []struct {
	UserID  uuid.UUID
	Message string
} {
	mock.lockAppend.RLock()
	defer mock.lockAppend.RUnlock()
	return mock.calls.Append
}

type notifierMock struct {
	PublishFunc func(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error)

	calls struct {
		Publish []struct {
			UserID       uuid.UUID
			Notification domain.Notification
		}
	}
	lockPublish sync.RWMutex
}

func (mock *notifierMock) Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error) {
	if mock.PublishFunc == nil {
		panic("notifierMock.PublishFunc: method is nil but notifier.Publish was just called")
	}
	callInfo := struct {
		UserID       uuid.UUID
		Notification domain.Notification
	}{UserID: userID, Notification: n}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, userID, n)
}

func (mock *notifierMock) PublishCalls() []struct {
	UserID       uuid.UUID
	Notification domain.Notification
} {
	mock.lockPublish.RLock()
	defer mock.lockPublish.RUnlock()
	return mock.calls.Publish
}

type mailQueueMock struct {
	EnqueueFunc func(ctx context.Context, email domain.Email) (*mailqueue.Pending, error)

	calls struct {
		Enqueue []struct{ Email domain.Email }
	}
	lockEnqueue sync.RWMutex
}

func (mock *mailQueueMock) Enqueue(ctx context.Context, email domain.Email) (*mailqueue.Pending, error) {
	if mock.EnqueueFunc == nil {
		panic("mailQueueMock.EnqueueFunc: method is nil but mailQueue.Enqueue was just called")
	}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, struct{ Email domain.Email }{email})
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, email)
}

func (mock *mailQueueMock) EnqueueCalls() []struct{ Email domain.Email } {
	mock.lockEnqueue.RLock()
	defer mock.lockEnqueue.RUnlock()
	return mock.calls.Enqueue
}
