package matching

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// ReportFoundInput is a finder's report.
type ReportFoundInput struct {
	LostPerson       uuid.UUID
	FoundPerson      uuid.UUID
	FoundPersonPhone string
	LocationFound    string
	DateFound        time.Time
	Name             string
	Image            string
	Description      string
	LostItemID       *uuid.UUID
}

func (i *ReportFoundInput) normalize() {
	i.FoundPersonPhone = strings.TrimSpace(i.FoundPersonPhone)
	i.LocationFound = strings.TrimSpace(i.LocationFound)
	i.Name = strings.TrimSpace(i.Name)
	i.Image = strings.TrimSpace(i.Image)
	i.Description = strings.TrimSpace(i.Description)
}

// Validate collects every missing field.
func (i ReportFoundInput) Validate() error {
	var errs []domain.FieldError

	if i.LostPerson == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lostPerson", Message: "required"})
	}
	if i.FoundPerson == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "foundPerson", Message: "required"})
	}
	if i.FoundPersonPhone == "" {
		errs = append(errs, domain.FieldError{Field: "foundPersonPhone", Message: "required"})
	}
	if i.LocationFound == "" {
		errs = append(errs, domain.FieldError{Field: "locationFound", Message: "required"})
	}
	if i.DateFound.IsZero() {
		errs = append(errs, domain.FieldError{Field: "dateFound", Message: "required"})
	} else if i.DateFound.After(time.Now().Add(24 * time.Hour)) {
		errs = append(errs, domain.FieldError{Field: "dateFound", Message: "in the future"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SendEmailInput is a free-form message.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
}

// Validate validates the send email input.
func (i SendEmailInput) Validate() error {
	var errs []domain.FieldError

	if i.To == "" {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	} else if !govalidator.IsEmail(i.To) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "invalid email"})
	}
	if strings.TrimSpace(i.Subject) == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
