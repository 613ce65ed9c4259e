package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/bookmark"
)

type bookmarkService interface {
	Create(ctx context.Context, input bookmark.CreateInput) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookmarkHandler serves bookmarks.
type BookmarkHandler struct {
	svc bookmarkService
	log *slog.Logger
}

// NewBookmarkHandler creates a BookmarkHandler.
func NewBookmarkHandler(svc bookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{svc: svc, log: logger.With("handler", "bookmark")}
}

type createBookmarkRequest struct {
	LostItemID uuid.UUID `json:"lostItemId"`
}

type createBookmarkResponse struct {
	Message  string           `json:"message"`
	Bookmark bookmarkResponse `json:"bookmark"`
}

// Create handles POST /api/bookmarks for the caller.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookmarkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), bookmark.CreateInput{LostItemID: req.LostItemID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "Item already bookmarked")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "User or lost item not found")
		default:
			handleError(w, r, h.log, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, createBookmarkResponse{
		Message:  "Item bookmarked",
		Bookmark: toBookmarkResponse(b, nil),
	})
}

// ListByUser handles GET /api/bookmarks/{id}, where id names the user.
func (h *BookmarkHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out, err := populateBookmarks(r.Context(), list)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /api/bookmarks/{id}.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Bookmark not found")
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Bookmark removed"})
}
