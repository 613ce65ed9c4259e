// Package matching coordinates what happens when a finder reports an item:
// the report is stored, and the owner is told in-app, live, and by email.
package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/lostfound-backend/internal/config"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
)

type foundItemRepo interface {
	Create(ctx context.Context, item *domain.FoundItem) (*domain.FoundItem, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type notificationRepo interface {
	Append(ctx context.Context, userID uuid.UUID, message string) (*domain.Notification, error)
}

// notifier is the real-time channel: the local hub or the redis relay.
type notifier interface {
	Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error)
}

type mailQueue interface {
	Enqueue(ctx context.Context, email domain.Email) (*mailqueue.Pending, error)
}

// Service implements the found-item workflow and the email endpoints.
type Service struct {
	log           *slog.Logger
	foundItems    foundItemRepo
	users         userRepo
	notifications notificationRepo
	notifier      notifier
	mail          mailQueue
	reported      prometheus.Counter
	cfg           config.MatchingConfig
}

// NewService creates a new matching service instance.
func NewService(
	logger *slog.Logger,
	foundItems foundItemRepo,
	users userRepo,
	notifications notificationRepo,
	notifier notifier,
	mail mailQueue,
	reported prometheus.Counter,
	cfg config.MatchingConfig,
) *Service {
	return &Service{
		log:           logger.With("service", "matching"),
		foundItems:    foundItems,
		users:         users,
		notifications: notifications,
		notifier:      notifier,
		mail:          mail,
		reported:      reported,
		cfg:           cfg,
	}
}
