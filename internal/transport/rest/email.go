package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/matching"
)

type emailService interface {
	SendFoundEmail(ctx context.Context, details mail.FoundItemDetails) (domain.Receipt, error)
	SendEmail(ctx context.Context, input matching.SendEmailInput) (domain.Receipt, error)
}

// EmailHandler serves the client-initiated email endpoints. Both wait for the
// delivery worker before responding.
type EmailHandler struct {
	svc emailService
	log *slog.Logger
}

// NewEmailHandler creates an EmailHandler.
func NewEmailHandler(svc emailService, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{svc: svc, log: logger.With("handler", "email")}
}

type sendFoundEmailRequest struct {
	LostPersonEmail string `json:"lostPersonEmail"`
	ItemName        string `json:"itemName"`
	FinderName      string `json:"finderName"`
	FinderPhone     string `json:"finderPhone"`
	LocationFound   string `json:"locationFound"`
	DateFound       string `json:"dateFound"`
	Description     string `json:"description"`
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type sendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// SendFoundEmail handles POST /api/send-found-email.
func (h *EmailHandler) SendFoundEmail(w http.ResponseWriter, r *http.Request) {
	var req sendFoundEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	receipt, err := h.svc.SendFoundEmail(r.Context(), mail.FoundItemDetails{
		OwnerEmail:    req.LostPersonEmail,
		ItemName:      req.ItemName,
		FinderName:    req.FinderName,
		FinderPhone:   req.FinderPhone,
		LocationFound: req.LocationFound,
		DateFound:     req.DateFound,
		Description:   req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) && strings.TrimSpace(req.LostPersonEmail) == "" {
			resp := errorResponse{
				Error:   "Missing recipient email",
				Warning: "Owner email not available; the owner cannot be contacted by email",
			}
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, sendEmailResponse{Success: true, MessageID: receipt.MessageID})
}

// SendEmail handles POST /api/send-email.
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	receipt, err := h.svc.SendEmail(r.Context(), matching.SendEmailInput{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, sendEmailResponse{Success: true, MessageID: receipt.MessageID})
}
