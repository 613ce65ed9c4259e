package auth

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// SignupInput holds the registration form.
type SignupInput struct {
	Username   string
	Email      string
	Phone      string
	Profession string
	Location   domain.Location
	Password   string
}

func (i *SignupInput) normalize() {
	i.Username = strings.TrimSpace(i.Username)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Phone = strings.TrimSpace(i.Phone)
	i.Profession = strings.TrimSpace(i.Profession)
	i.Location.District = strings.TrimSpace(i.Location.District)
	i.Location.State = strings.TrimSpace(i.Location.State)
}

// Validate reports every missing field, then format problems.
func (i SignupInput) Validate() error {
	var errs []domain.FieldError

	required := []struct {
		field string
		value string
	}{
		{"username", i.Username},
		{"email", i.Email},
		{"phone", i.Phone},
		{"profession", i.Profession},
		{"locationDistrict", i.Location.District},
		{"locationState", i.Location.State},
		{"password", i.Password},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, domain.FieldError{Field: r.field, Message: "required"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	if len(i.Username) > 100 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "too long"})
	}
	if !govalidator.StringLength(i.Email, "3", "254") || !govalidator.IsEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	if len(i.Password) < 6 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short"})
	} else if len(i.Password) > 72 {
		// bcrypt ignores everything past 72 bytes.
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds email + password credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
