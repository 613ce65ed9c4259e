package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Users by ID (1:1 nullable)
// ---------------------------------------------------------------------------

func newUsersBatchFn(repo userRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.User](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.User, len(rows))
		for i := range rows {
			u := rows[i] // copy to avoid aliasing
			byID[u.ID] = &u
		}

		return mapResults(keys, byID)
	}
}

// ---------------------------------------------------------------------------
// Lost items by ID (1:1 nullable)
// ---------------------------------------------------------------------------

func newLostItemsBatchFn(repo lostItemRepo) dataloader.BatchFunc[uuid.UUID, *domain.LostItem] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.LostItem] {
		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.LostItem](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.LostItem, len(rows))
		for i := range rows {
			item := rows[i]
			byID[item.ID] = &item
		}

		return mapResults(keys, byID)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps results back to key order; missing keys get the zero value.
func mapResults[V any](keys []uuid.UUID, byID map[uuid.UUID]V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[V]{Data: byID[key]}
	}
	return results
}
