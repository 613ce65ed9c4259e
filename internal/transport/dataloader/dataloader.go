// Package dataloader provides per-request DataLoaders that batch the user and
// lost-item lookups needed to populate REST responses into single SQL calls.
// DataLoaders call repositories directly, bypassing the service layer.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type lostItemRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.LostItem, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	User     userRepo
	LostItem lostItemRepo
}

// Loaders contains the per-request DataLoaders. Created per-request via NewLoaders.
type Loaders struct {
	UserByID     *dataloader.Loader[uuid.UUID, *domain.User]
	LostItemByID *dataloader.Loader[uuid.UUID, *domain.LostItem]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		UserByID:     newLoader(newUsersBatchFn(repos.User)),
		LostItemByID: newLoader(newLostItemsBatchFn(repos.LostItem)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}

// Users resolves ids in order. Missing users come back as nil.
func Users(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	return loadMany(ctx, FromContext(ctx).UserByID, ids)
}

// LostItems resolves ids in order. Missing items come back as nil.
func LostItems(ctx context.Context, ids []uuid.UUID) ([]*domain.LostItem, error) {
	return loadMany(ctx, FromContext(ctx).LostItemByID, ids)
}

func loadMany[V any](ctx context.Context, l *dataloader.Loader[uuid.UUID, *V], ids []uuid.UUID) ([]*V, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	values, errs := l.LoadMany(ctx, ids)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}
