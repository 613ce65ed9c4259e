// Package bookmark implements the Bookmark repository using PostgreSQL.
// Uniqueness of (user_id, lost_item_id) is enforced by the bookmarks_user_item_key
// constraint, so concurrent duplicate inserts resolve to exactly one row.
package bookmark

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const table = "bookmarks"

const returning = "RETURNING id, user_id, lost_item_id, created_at"

// Repo provides bookmark persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new bookmark repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a bookmark.
// Returns domain.ErrAlreadyExists if the user already bookmarked the item and
// domain.ErrNotFound if the user or the lost item does not exist.
func (r *Repo) Create(ctx context.Context, userID, lostItemID uuid.UUID) (*domain.Bookmark, error) {
	id := uuid.New()

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "lost_item_id").
		Values(id, userID, lostItemID).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create bookmark: %w", err)
	}

	b, err := scanBookmark(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", lostItemID)
	}
	return b, nil
}

// ListByUser returns a user's bookmarks in the order they were created.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	query, args, err := postgres.Builder().
		Select("id", "user_id", "lost_item_id", "created_at").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookmarks: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	result := []domain.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return result, nil
}

// GetByID returns a bookmark by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	query, args, err := postgres.Builder().
		Select("id", "user_id", "lost_item_id", "created_at").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get bookmark: %w", err)
	}

	b, err := scanBookmark(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", id)
	}
	return b, nil
}

// Delete removes a bookmark by id. Returns domain.ErrNotFound if no row matched.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete bookmark: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "bookmark", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (*domain.Bookmark, error) {
	var b domain.Bookmark
	if err := row.Scan(&b.ID, &b.UserID, &b.LostItemID, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
