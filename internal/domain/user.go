package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is a coarse administrative area.
type Location struct {
	District string
	State    string
}

// User is a registered account. Owners of lost items and finders are both users.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Phone        string
	Profession   string
	Location     Location
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasEmail reports whether the user can be reached by email.
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}

// UserSummary is the public projection embedded in item responses.
type UserSummary struct {
	ID       uuid.UUID
	Username string
	Email    string
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Notification is an in-app message attached to a user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}
