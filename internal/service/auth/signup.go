package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// Signup registers a user with a bcrypt-hashed password.
// Returns ErrAlreadyExists if the email is taken.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	input.normalize()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Signup hash password: %w", err)
	}

	// Email uniqueness is enforced by the users_email_key constraint.
	user, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		Profession:   input.Profession,
		Location:     input.Location,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Signup: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Signup: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))

	return user, nil
}
