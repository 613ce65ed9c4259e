package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// FoundItemDetails is what the owner is told about a reported find.
type FoundItemDetails struct {
	OwnerEmail    string
	ItemName      string
	FinderName    string
	FinderPhone   string
	LocationFound string
	DateFound     string
	Description   string
}

var foundItemTmpl = template.Must(template.New("found").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2e7d32;">Good news! Your lost item has been found</h2>
  <p>Someone has reported finding your <strong>{{.ItemName}}</strong>.</p>
  <h3>Finder details</h3>
  <ul>
    <li><strong>Name:</strong> {{or .FinderName "Not provided"}}</li>
    <li><strong>Phone:</strong> {{or .FinderPhone "Not provided"}}</li>
  </ul>
  <h3>Where and when</h3>
  <ul>
    <li><strong>Location found:</strong> {{or .LocationFound "Not provided"}}</li>
    <li><strong>Date found:</strong> {{or .DateFound "Not provided"}}</li>
  </ul>
  {{- if .Description}}
  <h3>Description</h3>
  <p>{{.Description}}</p>
  {{- end}}
  <p>Please contact the finder to arrange collection.</p>
</div>
`))

// FoundItemEmail renders the owner notification for a found item. The
// message is flagged high priority.
func FoundItemEmail(d FoundItemDetails) (domain.Email, error) {
	var errs []domain.FieldError
	if d.OwnerEmail == "" {
		errs = append(errs, domain.FieldError{Field: "lostPersonEmail", Message: "owner email not available"})
	}
	if d.ItemName == "" {
		errs = append(errs, domain.FieldError{Field: "itemName", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.Email{}, domain.NewValidationErrors(errs)
	}

	var body bytes.Buffer
	if err := foundItemTmpl.Execute(&body, d); err != nil {
		return domain.Email{}, fmt.Errorf("render found item email: %w", err)
	}

	return domain.Email{
		To:      d.OwnerEmail,
		Subject: fmt.Sprintf(`Your lost item "%s" has been found!`, d.ItemName),
		HTML:    body.String(),
		Headers: map[string]string{
			"X-Priority": "1",
			"Importance": "high",
		},
	}, nil
}
