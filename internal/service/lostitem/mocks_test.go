package lostitem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

var (
	_ lostItemRepo = &lostItemRepoMock{}
	_ userRepo     = &userRepoMock{}
	_ txManager    = &txManagerMock{}
)

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() int {
	mock.lockRunInTx.RLock()
	defer mock.lockRunInTx.RUnlock()
	return len(mock.calls.RunInTx)
}

type lostItemRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.LostItem, error)
	ListFunc    func(ctx context.Context) ([]domain.LostItem, error)
	CreateFunc  func(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error)
	UpdateFunc  func(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct{ Item *domain.LostItem }
		Update []struct{ Item *domain.LostItem }
		Delete []struct{ ID uuid.UUID }
	}
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *lostItemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error) {
	if mock.GetByIDFunc == nil {
		panic("lostItemRepoMock.GetByIDFunc: method is nil but lostItemRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *lostItemRepoMock) List(ctx context.Context) ([]domain.LostItem, error) {
	if mock.ListFunc == nil {
		panic("lostItemRepoMock.ListFunc: method is nil but lostItemRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *lostItemRepoMock) Create(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error) {
	if mock.CreateFunc == nil {
		panic("lostItemRepoMock.CreateFunc: method is nil but lostItemRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Item *domain.LostItem }{item})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *lostItemRepoMock) CreateCalls() []struct{ Item *domain.LostItem } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *lostItemRepoMock) Update(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error) {
	if mock.UpdateFunc == nil {
		panic("lostItemRepoMock.UpdateFunc: method is nil but lostItemRepo.Update was just called")
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Item *domain.LostItem }{item})
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, item)
}

func (mock *lostItemRepoMock) UpdateCalls() []struct{ Item *domain.LostItem } {
	mock.lockUpdate.RLock()
	defer mock.lockUpdate.RUnlock()
	return mock.calls.Update
}

func (mock *lostItemRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("lostItemRepoMock.DeleteFunc: method is nil but lostItemRepo.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID uuid.UUID }{id})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *lostItemRepoMock) DeleteCalls() []struct{ ID uuid.UUID } {
	mock.lockDelete.RLock()
	defer mock.lockDelete.RUnlock()
	return mock.calls.Delete
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}
