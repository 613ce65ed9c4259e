package bookmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

type bookmarkRepo interface {
	Create(ctx context.Context, userID, lostItemID uuid.UUID) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages bookmarks on lost items.
type Service struct {
	bookmarks bookmarkRepo
	log       *slog.Logger
}

// NewService creates a new bookmark service.
func NewService(log *slog.Logger, bookmarks bookmarkRepo) *Service {
	return &Service{
		bookmarks: bookmarks,
		log:       log.With("service", "bookmark"),
	}
}

// CreateInput holds the parameters for bookmarking a lost item.
type CreateInput struct {
	LostItemID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	if i.LostItemID == uuid.Nil {
		return domain.NewValidationError("lostItem", "required")
	}
	return nil
}

// Create bookmarks a lost item for the current user.
//
// The (user, lost item) unique constraint is the only duplicate check: a
// second bookmark fails with ErrAlreadyExists. ErrNotFound means the lost
// item does not exist.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, err := s.bookmarks.Create(ctx, userID, input.LostItemID)
	if err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}

	s.log.InfoContext(ctx, "bookmark created",
		slog.String("user_id", userID.String()),
		slog.String("lost_item_id", input.LostItemID.String()),
	)

	return b, nil
}

// ListByUser returns a user's bookmarks, oldest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	list, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return list, nil
}

// Delete removes one of the current user's bookmarks.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	b, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get bookmark: %w", err)
	}
	if b.UserID != userID {
		return domain.ErrForbidden
	}

	// ErrNotFound here means it was removed between the lookup and the delete.
	if err := s.bookmarks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	s.log.InfoContext(ctx, "bookmark deleted",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", id.String()),
	)

	return nil
}
