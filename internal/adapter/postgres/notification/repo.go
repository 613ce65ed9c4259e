// Package notification implements the per-user notification log using PostgreSQL.
package notification

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const table = "notifications"

const returning = "RETURNING id, user_id, message, read, created_at"

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Append adds an unread notification to the user's log. Each call is a
// single-row insert, so concurrent appends for one user never overwrite
// each other. Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) Append(ctx context.Context, userID uuid.UUID, message string) (*domain.Notification, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "message").
		Values(uuid.New(), userID, message).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build append notification: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	n, err := scanNotification(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	return n, nil
}

// ListByUser returns the user's notifications in append order.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	query, args, err := postgres.Builder().
		Select("id", "user_id", "message", "read", "created_at").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	result := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return result, nil
}

// MarkRead flags a notification as read. Returns domain.ErrNotFound if the
// notification does not exist or belongs to another user.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build mark notification read: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	n, err := scanNotification(row)
	if err != nil {
		return nil, postgres.MapError(err, "notification", id)
	}
	return n, nil
}

// DeleteReadBefore removes read notifications created before cutoff and
// returns the number of deleted rows.
func (r *Repo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"read": true}).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete notifications: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(row scanner) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
