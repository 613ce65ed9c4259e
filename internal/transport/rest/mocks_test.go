package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/auth"
	"github.com/heartmarshall/lostfound-backend/internal/service/bookmark"
	"github.com/heartmarshall/lostfound-backend/internal/service/lostitem"
	"github.com/heartmarshall/lostfound-backend/internal/service/matching"
)

// Hand-written stubs; tests set only the funcs they expect to be called.

var (
	_ authService         = &authServiceMock{}
	_ lostItemService     = &lostItemServiceMock{}
	_ foundItemService    = &foundItemServiceMock{}
	_ reportService       = &reportServiceMock{}
	_ emailService        = &emailServiceMock{}
	_ bookmarkService     = &bookmarkServiceMock{}
	_ notificationService = &notificationServiceMock{}
)

type authServiceMock struct {
	SignupFunc  func(ctx context.Context, input auth.SignupInput) (*domain.User, error)
	LoginFunc   func(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	GetUserFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *authServiceMock) Signup(ctx context.Context, input auth.SignupInput) (*domain.User, error) {
	if m.SignupFunc == nil {
		panic("authServiceMock.SignupFunc: method is nil but authService.Signup was just called")
	}
	return m.SignupFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	if m.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserFunc == nil {
		panic("authServiceMock.GetUserFunc: method is nil but authService.GetUser was just called")
	}
	return m.GetUserFunc(ctx, id)
}

type lostItemServiceMock struct {
	CreateFunc func(ctx context.Context, input lostitem.CreateInput) (*domain.LostItem, error)
	ListFunc   func(ctx context.Context) ([]domain.LostItem, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*lostitem.Detail, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, input lostitem.UpdateInput) (*domain.LostItem, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *lostItemServiceMock) Create(ctx context.Context, input lostitem.CreateInput) (*domain.LostItem, error) {
	if m.CreateFunc == nil {
		panic("lostItemServiceMock.CreateFunc: method is nil but lostItemService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *lostItemServiceMock) List(ctx context.Context) ([]domain.LostItem, error) {
	if m.ListFunc == nil {
		panic("lostItemServiceMock.ListFunc: method is nil but lostItemService.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *lostItemServiceMock) Get(ctx context.Context, id uuid.UUID) (*lostitem.Detail, error) {
	if m.GetFunc == nil {
		panic("lostItemServiceMock.GetFunc: method is nil but lostItemService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *lostItemServiceMock) Update(ctx context.Context, id uuid.UUID, input lostitem.UpdateInput) (*domain.LostItem, error) {
	if m.UpdateFunc == nil {
		panic("lostItemServiceMock.UpdateFunc: method is nil but lostItemService.Update was just called")
	}
	return m.UpdateFunc(ctx, id, input)
}

func (m *lostItemServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("lostItemServiceMock.DeleteFunc: method is nil but lostItemService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type foundItemServiceMock struct {
	ListFunc   func(ctx context.Context) ([]domain.FoundItem, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *foundItemServiceMock) List(ctx context.Context) ([]domain.FoundItem, error) {
	if m.ListFunc == nil {
		panic("foundItemServiceMock.ListFunc: method is nil but foundItemService.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *foundItemServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error) {
	if m.GetFunc == nil {
		panic("foundItemServiceMock.GetFunc: method is nil but foundItemService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *foundItemServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("foundItemServiceMock.DeleteFunc: method is nil but foundItemService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type reportServiceMock struct {
	ReportFoundFunc func(ctx context.Context, input matching.ReportFoundInput) (*matching.ReportResult, error)
}

func (m *reportServiceMock) ReportFound(ctx context.Context, input matching.ReportFoundInput) (*matching.ReportResult, error) {
	if m.ReportFoundFunc == nil {
		panic("reportServiceMock.ReportFoundFunc: method is nil but reportService.ReportFound was just called")
	}
	return m.ReportFoundFunc(ctx, input)
}

type emailServiceMock struct {
	SendFoundEmailFunc func(ctx context.Context, details mail.FoundItemDetails) (domain.Receipt, error)
	SendEmailFunc      func(ctx context.Context, input matching.SendEmailInput) (domain.Receipt, error)
}

func (m *emailServiceMock) SendFoundEmail(ctx context.Context, details mail.FoundItemDetails) (domain.Receipt, error) {
	if m.SendFoundEmailFunc == nil {
		panic("emailServiceMock.SendFoundEmailFunc: method is nil but emailService.SendFoundEmail was just called")
	}
	return m.SendFoundEmailFunc(ctx, details)
}

func (m *emailServiceMock) SendEmail(ctx context.Context, input matching.SendEmailInput) (domain.Receipt, error) {
	if m.SendEmailFunc == nil {
		panic("emailServiceMock.SendEmailFunc: method is nil but emailService.SendEmail was just called")
	}
	return m.SendEmailFunc(ctx, input)
}

type bookmarkServiceMock struct {
	CreateFunc     func(ctx context.Context, input bookmark.CreateInput) (*domain.Bookmark, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *bookmarkServiceMock) Create(ctx context.Context, input bookmark.CreateInput) (*domain.Bookmark, error) {
	if m.CreateFunc == nil {
		panic("bookmarkServiceMock.CreateFunc: method is nil but bookmarkService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *bookmarkServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	if m.ListByUserFunc == nil {
		panic("bookmarkServiceMock.ListByUserFunc: method is nil but bookmarkService.ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID)
}

func (m *bookmarkServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("bookmarkServiceMock.DeleteFunc: method is nil but bookmarkService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type notificationServiceMock struct {
	ListFunc     func(ctx context.Context) ([]domain.Notification, error)
	MarkReadFunc func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
}

func (m *notificationServiceMock) List(ctx context.Context) ([]domain.Notification, error) {
	if m.ListFunc == nil {
		panic("notificationServiceMock.ListFunc: method is nil but notificationService.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *notificationServiceMock) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.MarkReadFunc == nil {
		panic("notificationServiceMock.MarkReadFunc: method is nil but notificationService.MarkRead was just called")
	}
	return m.MarkReadFunc(ctx, id)
}

// tokenStub accepts "Bearer <uuid>" and rejects anything else.
type tokenStub struct{}

func (tokenStub) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

type userReposStub struct {
	users map[uuid.UUID]domain.User
}

func (s *userReposStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type lostItemReposStub struct {
	items map[uuid.UUID]domain.LostItem
}

func (s *lostItemReposStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.LostItem, error) {
	var out []domain.LostItem
	for _, id := range ids {
		if it, ok := s.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}
