package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service exposes a user's durable notifications.
type Service struct {
	notifications notificationRepo
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new notification service.
func NewService(log *slog.Logger, notifications notificationRepo) *Service {
	return &Service{
		notifications: notifications,
		log:           log.With("service", "notification"),
		now:           time.Now,
	}
}

// List returns the current user's notifications in append order.
func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	list, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

// MarkRead marks one of the current user's notifications as read.
// Another user's notification is reported as not found.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.notifications.MarkRead(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

// CleanupRead deletes read notifications older than retention.
func (s *Service) CleanupRead(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, domain.NewValidationError("retention", "must be positive")
	}

	cutoff := s.now().Add(-retention)
	deleted, err := s.notifications.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup read notifications: %w", err)
	}

	s.log.InfoContext(ctx, "read notifications cleaned up",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)

	return deleted, nil
}
