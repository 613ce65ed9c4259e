// Package lostitem implements the LostItem repository using PostgreSQL.
package lostitem

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const table = "lost_items"

var columns = []string{
	"id", "user_id", "name", "image", "locations", "description", "category",
	"district", "state", "date_lost", "created_at", "updated_at",
}

// Repo provides lost item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lost item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a lost item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostItem, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lost item: %w", err)
	}

	item, err := scanLostItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "lost_item", id)
	}
	return item, nil
}

// GetByIDs returns the lost items with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.LostItem, error) {
	if len(ids) == 0 {
		return []domain.LostItem{}, nil
	}
	return r.list(ctx, postgres.Builder().Select(columns...).From(table).Where(sq.Eq{"id": ids}))
}

// List returns all lost items, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.LostItem, error) {
	return r.list(ctx, postgres.Builder().Select(columns...).From(table).OrderBy("created_at DESC", "id"))
}

func (r *Repo) list(ctx context.Context, b sq.SelectBuilder) ([]domain.LostItem, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list lost items: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}
	defer rows.Close()

	items := []domain.LostItem{}
	for rows.Next() {
		item, err := scanLostItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lost item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lost items: %w", err)
	}
	return items, nil
}

// Create inserts a lost item. Returns domain.ErrNotFound if the owner does not exist.
func (r *Repo) Create(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "name", "image", "locations", "description", "category", "district", "state", "date_lost").
		Values(item.ID, item.UserID, item.Name, item.Image, item.Locations, item.Description,
			item.Category, item.Location.District, item.Location.State, item.DateLost).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create lost item: %w", err)
	}

	created, err := scanLostItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "lost_item", item.ID)
	}
	return created, nil
}

// Update overwrites the mutable fields of a lost item.
func (r *Repo) Update(ctx context.Context, item *domain.LostItem) (*domain.LostItem, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("name", item.Name).
		Set("image", item.Image).
		Set("locations", item.Locations).
		Set("description", item.Description).
		Set("category", item.Category).
		Set("district", item.Location.District).
		Set("state", item.Location.State).
		Set("date_lost", item.DateLost).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update lost item: %w", err)
	}

	updated, err := scanLostItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "lost_item", item.ID)
	}
	return updated, nil
}

// Delete removes a lost item. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lost item: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "lost_item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lost_item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLostItem(row scanner) (*domain.LostItem, error) {
	var it domain.LostItem
	err := row.Scan(
		&it.ID, &it.UserID, &it.Name, &it.Image, &it.Locations, &it.Description, &it.Category,
		&it.Location.District, &it.Location.State, &it.DateLost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
