package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/service/auth"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Signup(ctx context.Context, input auth.SignupInput) (*domain.User, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AuthHandler serves account endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type signupRequest struct {
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Profession string       `json:"profession"`
	Location   locationJSON `json:"location"`
	Password   string       `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.svc.Signup(r.Context(), auth.SignupInput{
		Username:   req.Username,
		Email:      req.Email,
		Phone:      req.Phone,
		Profession: req.Profession,
		Location:   toLocation(req.Location),
		Password:   req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:   result.Token,
		Message: "Login successful",
		User:    toUserResponse(result.User),
	})
}

// GetUser handles GET /api/auth/user/{userId}.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
