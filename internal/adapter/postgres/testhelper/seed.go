package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "user-" + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		Phone:        "555-" + suffix[:4],
		Profession:   "tester",
		Location:     domain.Location{District: "Central", State: "Test State"},
		PasswordHash: "$2a$10$seedseedseedseedseedseedseedseedseedseedseedseedseedse",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, email, phone, profession, district, state, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Username, user.Email, user.Phone, user.Profession,
		user.Location.District, user.Location.State, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedLostItem inserts a lost item owned by userID and returns it.
func SeedLostItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.LostItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.LostItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "wallet-" + uniqueSuffix(),
		Locations:   []string{"Central Station"},
		Description: "brown leather",
		Category:    "accessories",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO lost_items (id, user_id, name, locations, description, category, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.UserID, item.Name, item.Locations, item.Description, item.Category, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLostItem: %v", err)
	}

	return item
}
