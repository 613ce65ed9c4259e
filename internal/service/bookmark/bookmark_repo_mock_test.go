package bookmark

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

var _ bookmarkRepo = &bookmarkRepoMock{}

type bookmarkRepoMock struct {
	CreateFunc     func(ctx context.Context, userID, lostItemID uuid.UUID) (*domain.Bookmark, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			UserID     uuid.UUID
			LostItemID uuid.UUID
		}
		ListByUser []struct{ UserID uuid.UUID }
		GetByID    []struct{ ID uuid.UUID }
		Delete     []struct{ ID uuid.UUID }
	}
	lockCreate     sync.RWMutex
	lockListByUser sync.RWMutex
	lockGetByID    sync.RWMutex
	lockDelete     sync.RWMutex
}

func (mock *bookmarkRepoMock) Create(ctx context.Context, userID, lostItemID uuid.UUID) (*domain.Bookmark, error) {
	if mock.CreateFunc == nil {
		panic("bookmarkRepoMock.CreateFunc: method is nil but bookmarkRepo.Create was just called")
	}
	callInfo := struct {
		UserID     uuid.UUID
		LostItemID uuid.UUID
	}{UserID: userID, LostItemID: lostItemID}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, userID, lostItemID)
}

func (mock *bookmarkRepoMock) CreateCalls() []struct {
	UserID     uuid.UUID
	LostItemID uuid.UUID
} {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *bookmarkRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	if mock.ListByUserFunc == nil {
		panic("bookmarkRepoMock.ListByUserFunc: method is nil but bookmarkRepo.ListByUser was just called")
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, struct{ UserID uuid.UUID }{userID})
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *bookmarkRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	if mock.GetByIDFunc == nil {
		panic("bookmarkRepoMock.GetByIDFunc: method is nil but bookmarkRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *bookmarkRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("bookmarkRepoMock.DeleteFunc: method is nil but bookmarkRepo.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID uuid.UUID }{id})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *bookmarkRepoMock) DeleteCalls() []struct{ ID uuid.UUID } {
	mock.lockDelete.RLock()
	defer mock.lockDelete.RUnlock()
	return mock.calls.Delete
}
