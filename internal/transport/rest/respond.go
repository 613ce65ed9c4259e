package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
	"github.com/heartmarshall/lostfound-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error         string               `json:"error"`
	Fields        []fieldErrorResponse `json:"fields,omitempty"`
	MissingFields []string             `json:"missingFields,omitempty"`
	Warning       string               `json:"warning,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body into dst. On failure it has already
// written a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID parses a uuid route parameter. On failure it has already written a
// 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// requireAuth rejects anonymous requests. Identity itself is resolved by
// middleware.Auth further out.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validationResponse(ve *domain.ValidationError) errorResponse {
	resp := errorResponse{Error: "validation failed"}
	for _, fe := range ve.Errors {
		resp.Fields = append(resp.Fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
		if fe.Message == "required" {
			resp.MissingFields = append(resp.MissingFields, fe.Field)
		}
	}
	if len(ve.Errors) == 1 {
		resp.Error = ve.Errors[0].Message
	}
	return resp
}

// handleError maps service errors onto status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, validationResponse(ve))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, mail.ErrAuth):
		log.ErrorContext(r.Context(), "email transport rejected credentials", slog.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, "email service authentication failed")
	case errors.Is(err, mailqueue.ErrQueueFull), errors.Is(err, mailqueue.ErrQueueClosed):
		writeError(w, http.StatusServiceUnavailable, "email service busy, try again later")
	case errors.Is(err, mailqueue.ErrStillPending):
		writeError(w, http.StatusServiceUnavailable, "email queued but not yet delivered")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response.
		log.InfoContext(r.Context(), "request canceled", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
