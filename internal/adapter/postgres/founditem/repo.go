// Package founditem implements the FoundItem repository using PostgreSQL.
// Found items are insert-only; there is no update path.
package founditem

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const table = "found_items"

var columns = []string{
	"id", "lost_person", "found_person", "found_person_phone", "location_found",
	"date_found", "name", "image", "description", "lost_item_id", "created_at",
}

// Repo provides found item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new found item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a found item. Returns domain.ErrNotFound if the finder does not exist.
func (r *Repo) Create(ctx context.Context, item *domain.FoundItem) (*domain.FoundItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns[:len(columns)-1]...).
		Values(item.ID, item.LostPerson, item.FoundPerson, item.FoundPersonPhone, item.LocationFound,
			item.DateFound, item.Name, item.Image, item.Description, item.LostItemID).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create found item: %w", err)
	}

	created, err := scanFoundItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "found_item", item.ID)
	}
	return created, nil
}

// GetByID returns a found item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get found item: %w", err)
	}

	item, err := scanFoundItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "found_item", id)
	}
	return item, nil
}

// List returns all found items, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.FoundItem, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list found items: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list found items: %w", err)
	}
	defer rows.Close()

	items := []domain.FoundItem{}
	for rows.Next() {
		item, err := scanFoundItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan found item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate found items: %w", err)
	}
	return items, nil
}

// Delete removes a found item. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete found item: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "found_item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("found_item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFoundItem(row scanner) (*domain.FoundItem, error) {
	var it domain.FoundItem
	err := row.Scan(
		&it.ID, &it.LostPerson, &it.FoundPerson, &it.FoundPersonPhone, &it.LocationFound,
		&it.DateFound, &it.Name, &it.Image, &it.Description, &it.LostItemID, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
