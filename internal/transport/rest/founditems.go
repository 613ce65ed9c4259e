package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/matching"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

type foundItemService interface {
	List(ctx context.Context) ([]domain.FoundItem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FoundItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportService interface {
	ReportFound(ctx context.Context, input matching.ReportFoundInput) (*matching.ReportResult, error)
}

// FoundItemHandler serves found item reports. Creation runs the matching
// workflow; the rest is plain CRUD.
type FoundItemHandler struct {
	items  foundItemService
	report reportService
	log    *slog.Logger
}

// NewFoundItemHandler creates a FoundItemHandler.
func NewFoundItemHandler(items foundItemService, report reportService, logger *slog.Logger) *FoundItemHandler {
	return &FoundItemHandler{items: items, report: report, log: logger.With("handler", "founditem")}
}

type createFoundItemRequest struct {
	LostPerson       string `json:"lostPerson"`
	FoundPersonPhone string `json:"foundPersonPhone"`
	LocationFound    string `json:"locationFound"`
	DateFound        date   `json:"dateFound"`
	Name             string `json:"name"`
	Image            string `json:"image"`
	Description      string `json:"description"`
	LostItemID       string `json:"lostItemId"`
}

type createFoundItemResponse struct {
	Message     string            `json:"message"`
	FoundItem   foundItemResponse `json:"foundItem"`
	Notified    bool              `json:"notified"`
	EmailQueued bool              `json:"emailQueued"`
	Warnings    []string          `json:"warnings"`
}

// Create handles POST /api/founditems. The finder is always the caller.
func (h *FoundItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFoundItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	finder, _ := ctxutil.UserIDFromCtx(r.Context())
	input := matching.ReportFoundInput{
		FoundPerson:      finder,
		FoundPersonPhone: req.FoundPersonPhone,
		LocationFound:    req.LocationFound,
		DateFound:        req.DateFound.Time,
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
	}

	var badIDs []domain.FieldError
	if s := strings.TrimSpace(req.LostPerson); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			badIDs = append(badIDs, domain.FieldError{Field: "lostPerson", Message: "invalid id"})
		}
		input.LostPerson = id
	}
	if s := strings.TrimSpace(req.LostItemID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			badIDs = append(badIDs, domain.FieldError{Field: "lostItemId", Message: "invalid id"})
		}
		input.LostItemID = &id
	}
	if len(badIDs) > 0 {
		handleError(w, r, h.log, domain.NewValidationErrors(badIDs))
		return
	}

	result, err := h.report.ReportFound(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusCreated, createFoundItemResponse{
		Message:     "Found item reported",
		FoundItem:   toFoundItemResponse(result.FoundItem, nil, nil),
		Notified:    result.Notified,
		EmailQueued: result.EmailQueued,
		Warnings:    warnings,
	})
}

// List handles GET /api/founditems.
func (h *FoundItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out, err := populateFoundItems(r.Context(), items)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/founditems/{id}.
func (h *FoundItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out, err := populateFoundItems(r.Context(), []domain.FoundItem{*item})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, out[0])
}

// Delete handles DELETE /api/founditems/{id}.
func (h *FoundItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Found item deleted"})
}
