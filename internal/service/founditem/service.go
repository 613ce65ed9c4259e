// Package founditem reads and removes found-item reports. Reports are
// created through the matching workflow and never updated.
package founditem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

type foundItemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error)
	List(ctx context.Context) ([]domain.FoundItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service provides found item queries.
type Service struct {
	items foundItemRepo
	log   *slog.Logger
}

// NewService creates a new found item service.
func NewService(log *slog.Logger, items foundItemRepo) *Service {
	return &Service{
		items: items,
		log:   log.With("service", "founditem"),
	}
}

// List returns every found item, newest first.
func (s *Service) List(ctx context.Context) ([]domain.FoundItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list found items: %w", err)
	}
	return items, nil
}

// Get returns a found item by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get found item: %w", err)
	}
	return item, nil
}

// Delete removes a report. Only the finder who filed it may delete it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get found item: %w", err)
	}
	if item.FoundPerson != userID {
		return domain.ErrForbidden
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete found item: %w", err)
	}

	s.log.InfoContext(ctx, "found item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", id.String()),
	)

	return nil
}
