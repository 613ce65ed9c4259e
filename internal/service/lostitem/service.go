package lostitem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

// EmailWarning is attached to an item whose owner cannot be emailed.
const EmailWarning = "Owner email not available"

type lostItemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error)
	List(ctx context.Context) ([]domain.LostItem, error)
	Create(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error)
	Update(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages lost item reports.
type Service struct {
	items lostItemRepo
	users userRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new lost item service.
func NewService(log *slog.Logger, items lostItemRepo, users userRepo, tx txManager) *Service {
	return &Service{
		items: items,
		users: users,
		tx:    tx,
		log:   log.With("service", "lostitem"),
	}
}

// Create stores a lost item owned by the current user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.LostItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.Create(ctx, &domain.LostItem{
		UserID:      userID,
		Name:        input.Name,
		Image:       input.Image,
		Locations:   input.Locations,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		DateLost:    input.DateLost,
	})
	if err != nil {
		return nil, fmt.Errorf("create lost item: %w", err)
	}

	s.log.InfoContext(ctx, "lost item created",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
	)

	return item, nil
}

// List returns every lost item, newest first.
func (s *Service) List(ctx context.Context) ([]domain.LostItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}
	return items, nil
}

// Detail is a lost item with its owner resolved.
type Detail struct {
	Item *domain.LostItem
	// Owner is nil if the owning account no longer resolves.
	Owner        *domain.User
	EmailWarning string
}

// Get returns a lost item with its owner. A missing owner or owner email is
// flagged, not an error.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lost item: %w", err)
	}

	detail := &Detail{Item: item}

	owner, err := s.users.GetByID(ctx, item.UserID)
	switch {
	case err == nil:
		detail.Owner = owner
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("get lost item owner: %w", err)
	}

	if !detail.Owner.HasEmail() {
		detail.EmailWarning = EmailWarning
	}

	return detail, nil
}

// Update changes the fields set in input. Only the owner may update.
// The ownership check and the write share one transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.LostItem, error) {
	var updated *domain.LostItem
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.owned(txCtx, id)
		if err != nil {
			return err
		}

		input.apply(item)
		if err := input.Validate(item); err != nil {
			return err
		}

		updated, err = s.items.Update(txCtx, item)
		if err != nil {
			return fmt.Errorf("update lost item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lost item updated", slog.String("item_id", id.String()))

	return updated, nil
}

// Delete removes a lost item. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.owned(txCtx, id); err != nil {
			return err
		}
		if err := s.items.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete lost item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "lost item deleted", slog.String("item_id", id.String()))

	return nil
}

// owned loads an item and checks the current user owns it.
func (s *Service) owned(ctx context.Context, id uuid.UUID) (*domain.LostItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lost item: %w", err)
	}
	if item.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}
