package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark links a user to a lost item they follow. A (UserID, LostItemID)
// pair is unique.
type Bookmark struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	LostItemID uuid.UUID
	CreatedAt  time.Time
}
