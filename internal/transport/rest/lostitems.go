package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/lostitem"
)

type lostItemService interface {
	Create(ctx context.Context, input lostitem.CreateInput) (*domain.LostItem, error)
	List(ctx context.Context) ([]domain.LostItem, error)
	Get(ctx context.Context, id uuid.UUID) (*lostitem.Detail, error)
	Update(ctx context.Context, id uuid.UUID, input lostitem.UpdateInput) (*domain.LostItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LostItemHandler serves lost item reports.
type LostItemHandler struct {
	svc lostItemService
	log *slog.Logger
}

// NewLostItemHandler creates a LostItemHandler.
func NewLostItemHandler(svc lostItemService, logger *slog.Logger) *LostItemHandler {
	return &LostItemHandler{svc: svc, log: logger.With("handler", "lostitem")}
}

type createLostItemRequest struct {
	Name        string       `json:"name"`
	Image       string       `json:"image"`
	Locations   []string     `json:"locations"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Location    locationJSON `json:"location"`
	DateLost    *date        `json:"dateLost"`
}

type updateLostItemRequest struct {
	Name        *string       `json:"name"`
	Image       *string       `json:"image"`
	Locations   []string      `json:"locations"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Location    *locationJSON `json:"location"`
	DateLost    *date         `json:"dateLost"`
}

type createLostItemResponse struct {
	Message  string           `json:"message"`
	LostItem lostItemResponse `json:"lostItem"`
}

type updateLostItemResponse struct {
	Message         string           `json:"message"`
	UpdatedLostItem lostItemResponse `json:"updatedLostItem"`
}

// Create handles POST /api/lostitems.
func (h *LostItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLostItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.Create(r.Context(), lostitem.CreateInput{
		Name:        req.Name,
		Image:       req.Image,
		Locations:   req.Locations,
		Description: req.Description,
		Category:    req.Category,
		Location:    toLocation(req.Location),
		DateLost:    req.DateLost.ptr(),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, createLostItemResponse{
		Message:  "Lost item reported",
		LostItem: toLostItemResponse(item, nil),
	})
}

// List handles GET /api/lostitems.
func (h *LostItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out, err := populateLostItems(r.Context(), items)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/lostitems/{id}.
func (h *LostItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toLostItemResponse(detail.Item, detail.Owner)
	resp.EmailWarning = detail.EmailWarning
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/lostitems/{id}.
func (h *LostItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateLostItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := lostitem.UpdateInput{
		Name:        req.Name,
		Image:       req.Image,
		Locations:   req.Locations,
		Description: req.Description,
		Category:    req.Category,
		DateLost:    req.DateLost.ptr(),
	}
	if req.Location != nil {
		loc := toLocation(*req.Location)
		input.Location = &loc
	}

	item, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updateLostItemResponse{
		Message:         "Lost item updated",
		UpdatedLostItem: toLostItemResponse(item, nil),
	})
}

// Delete handles DELETE /api/lostitems/{id}.
func (h *LostItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Lost item deleted"})
}
