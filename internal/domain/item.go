package domain

import (
	"time"

	"github.com/google/uuid"
)

// LostItem is a report by an owner that something is missing.
type LostItem struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Image       string
	Locations   []string
	Description string
	Category    string
	Location    Location
	DateLost    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FoundItem is a report by a finder claiming to have an item belonging to
// LostPerson. Found items are immutable once created.
type FoundItem struct {
	ID               uuid.UUID
	LostPerson       uuid.UUID
	FoundPerson      uuid.UUID
	FoundPersonPhone string
	LocationFound    string
	DateFound        time.Time
	Name             string
	Image            string
	Description      string
	LostItemID       *uuid.UUID
	CreatedAt        time.Time
}
