package founditem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

type foundItemRepoStub struct {
	item    *domain.FoundItem
	getErr  error
	deleted []uuid.UUID
}

func (s *foundItemRepoStub) GetByID(context.Context, uuid.UUID) (*domain.FoundItem, error) {
	return s.item, s.getErr
}

func (s *foundItemRepoStub) List(context.Context) ([]domain.FoundItem, error) {
	if s.item == nil {
		return nil, s.getErr
	}
	return []domain.FoundItem{*s.item}, nil
}

func (s *foundItemRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(repo *foundItemRepoStub) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	finder := uuid.New()

	tests := []struct {
		name        string
		ctx         context.Context
		repo        *foundItemRepoStub
		wantErr     error
		wantDeleted int
	}{
		{
			name:        "finder deletes",
			ctx:         ctxutil.WithUserID(context.Background(), finder),
			repo:        &foundItemRepoStub{item: &domain.FoundItem{FoundPerson: finder}},
			wantDeleted: 1,
		},
		{
			name:    "owner cannot delete",
			ctx:     ctxutil.WithUserID(context.Background(), uuid.New()),
			repo:    &foundItemRepoStub{item: &domain.FoundItem{FoundPerson: finder}},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "missing",
			ctx:     ctxutil.WithUserID(context.Background(), finder),
			repo:    &foundItemRepoStub{getErr: domain.ErrNotFound},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "anonymous",
			ctx:     context.Background(),
			repo:    &foundItemRepoStub{},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := newTestService(tt.repo).Delete(tt.ctx, uuid.New())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if len(tt.repo.deleted) != tt.wantDeleted {
				t.Errorf("got %d deletes, want %d", len(tt.repo.deleted), tt.wantDeleted)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestService(&foundItemRepoStub{getErr: domain.ErrNotFound}).Get(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	items, err := newTestService(&foundItemRepoStub{item: &domain.FoundItem{Name: "Umbrella"}}).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Umbrella" {
		t.Errorf("got %+v", items)
	}
}
