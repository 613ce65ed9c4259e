package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/transport/dataloader"
)

const dateLayout = "2006-01-02"

// date accepts either a calendar date or an RFC 3339 timestamp.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type locationJSON struct {
	District string `json:"district"`
	State    string `json:"state"`
}

func toLocation(l locationJSON) domain.Location {
	return domain.Location{District: l.District, State: l.State}
}

func fromLocation(l domain.Location) locationJSON {
	return locationJSON{District: l.District, State: l.State}
}

type userResponse struct {
	ID         uuid.UUID    `json:"id"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Profession string       `json:"profession"`
	Location   locationJSON `json:"location"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      u.Phone,
		Profession: u.Profession,
		Location:   fromLocation(u.Location),
		CreatedAt:  u.CreatedAt,
	}
}

// personResponse is a user reference. Username and email are empty when the
// id does not resolve to an account.
type personResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
}

func toPerson(id uuid.UUID, u *domain.User) personResponse {
	p := personResponse{ID: id}
	if u != nil {
		p.Username = u.Username
		p.Email = u.Email
		p.Phone = u.Phone
	}
	return p
}

type lostItemResponse struct {
	ID           uuid.UUID      `json:"id"`
	User         personResponse `json:"user"`
	Name         string         `json:"name"`
	Image        string         `json:"image,omitempty"`
	Locations    []string       `json:"locations"`
	Description  string         `json:"description"`
	Category     string         `json:"category,omitempty"`
	Location     locationJSON   `json:"location"`
	DateLost     *time.Time     `json:"dateLost,omitempty"`
	EmailWarning string         `json:"emailWarning,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func toLostItemResponse(item *domain.LostItem, owner *domain.User) lostItemResponse {
	return lostItemResponse{
		ID:          item.ID,
		User:        toPerson(item.UserID, owner),
		Name:        item.Name,
		Image:       item.Image,
		Locations:   item.Locations,
		Description: item.Description,
		Category:    item.Category,
		Location:    fromLocation(item.Location),
		DateLost:    item.DateLost,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

type foundItemResponse struct {
	ID               uuid.UUID      `json:"id"`
	LostPerson       personResponse `json:"lostPerson"`
	FoundPerson      personResponse `json:"foundPerson"`
	FoundPersonPhone string         `json:"foundPersonPhone"`
	LocationFound    string         `json:"locationFound"`
	DateFound        time.Time      `json:"dateFound"`
	Name             string         `json:"name"`
	Image            string         `json:"image,omitempty"`
	Description      string         `json:"description"`
	LostItemID       *uuid.UUID     `json:"lostItemId,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

func toFoundItemResponse(item *domain.FoundItem, owner, finder *domain.User) foundItemResponse {
	return foundItemResponse{
		ID:               item.ID,
		LostPerson:       toPerson(item.LostPerson, owner),
		FoundPerson:      toPerson(item.FoundPerson, finder),
		FoundPersonPhone: item.FoundPersonPhone,
		LocationFound:    item.LocationFound,
		DateFound:        item.DateFound,
		Name:             item.Name,
		Image:            item.Image,
		Description:      item.Description,
		LostItemID:       item.LostItemID,
		CreatedAt:        item.CreatedAt,
	}
}

type bookmarkResponse struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"userId"`
	LostItemID uuid.UUID         `json:"lostItemId"`
	LostItem   *lostItemResponse `json:"lostItem,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func toBookmarkResponse(b *domain.Bookmark, item *domain.LostItem) bookmarkResponse {
	resp := bookmarkResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		LostItemID: b.LostItemID,
		CreatedAt:  b.CreatedAt,
	}
	if item != nil {
		li := toLostItemResponse(item, nil)
		resp.LostItem = &li
	}
	return resp
}

type notificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{ID: n.ID, Message: n.Message, Read: n.Read, CreatedAt: n.CreatedAt}
}

// populateLostItems resolves every owner in one batch.
func populateLostItems(ctx context.Context, items []domain.LostItem) ([]lostItemResponse, error) {
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].UserID
	}
	owners, err := dataloader.Users(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}

	out := make([]lostItemResponse, len(items))
	for i := range items {
		out[i] = toLostItemResponse(&items[i], owners[i])
	}
	return out, nil
}

// populateFoundItems resolves owners and finders in one batch.
func populateFoundItems(ctx context.Context, items []domain.FoundItem) ([]foundItemResponse, error) {
	ids := make([]uuid.UUID, 0, 2*len(items))
	for i := range items {
		ids = append(ids, items[i].LostPerson, items[i].FoundPerson)
	}
	users, err := dataloader.Users(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}

	out := make([]foundItemResponse, len(items))
	for i := range items {
		out[i] = toFoundItemResponse(&items[i], users[2*i], users[2*i+1])
	}
	return out, nil
}

// populateBookmarks resolves the bookmarked lost items in one batch.
func populateBookmarks(ctx context.Context, list []domain.Bookmark) ([]bookmarkResponse, error) {
	ids := make([]uuid.UUID, len(list))
	for i := range list {
		ids[i] = list[i].LostItemID
	}
	items, err := dataloader.LostItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load lost items: %w", err)
	}

	out := make([]bookmarkResponse, len(list))
	for i := range list {
		out[i] = toBookmarkResponse(&list[i], items[i])
	}
	return out, nil
}
