package lostitem

import (
	"strings"
	"time"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 5000
)

// CreateInput holds a new lost item report.
type CreateInput struct {
	Name        string
	Image       string
	Locations   []string
	Description string
	Category    string
	Location    domain.Location
	DateLost    *time.Time
}

func (i *CreateInput) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Image = strings.TrimSpace(i.Image)
	i.Description = strings.TrimSpace(i.Description)
	i.Category = strings.TrimSpace(i.Category)
	i.Locations = cleanLocations(i.Locations)
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	return validateItem(i.Name, i.Description, i.Locations, i.DateLost)
}

// UpdateInput holds optional changes. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Image       *string
	Locations   []string
	Description *string
	Category    *string
	Location    *domain.Location
	DateLost    *time.Time
}

func (i UpdateInput) apply(item *domain.LostItem) {
	if i.Name != nil {
		item.Name = strings.TrimSpace(*i.Name)
	}
	if i.Image != nil {
		item.Image = strings.TrimSpace(*i.Image)
	}
	if i.Locations != nil {
		item.Locations = cleanLocations(i.Locations)
	}
	if i.Description != nil {
		item.Description = strings.TrimSpace(*i.Description)
	}
	if i.Category != nil {
		item.Category = strings.TrimSpace(*i.Category)
	}
	if i.Location != nil {
		item.Location = *i.Location
	}
	if i.DateLost != nil {
		item.DateLost = i.DateLost
	}
}

// Validate checks the item as it would be after the update.
func (i UpdateInput) Validate(item *domain.LostItem) error {
	return validateItem(item.Name, item.Description, item.Locations, item.DateLost)
}

func validateItem(name, description string, locations []string, dateLost *time.Time) error {
	var errs []domain.FieldError

	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if len(locations) == 0 {
		errs = append(errs, domain.FieldError{Field: "locations", Message: "Please provide at least one location."})
	}
	if len(description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if dateLost != nil && dateLost.After(time.Now().Add(24*time.Hour)) {
		errs = append(errs, domain.FieldError{Field: "dateLost", Message: "in the future"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// cleanLocations trims entries and drops blanks.
func cleanLocations(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
