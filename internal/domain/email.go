package domain

// EmailStatus is the lifecycle state of a queued email.
type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// Email is an outbound message waiting for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
	Headers map[string]string
}

// Validate checks that the message can be handed to a transport.
func (e Email) Validate() error {
	var errs []FieldError
	if e.To == "" {
		errs = append(errs, FieldError{Field: "to", Message: "required"})
	}
	if e.Subject == "" {
		errs = append(errs, FieldError{Field: "subject", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Receipt is the transport's acknowledgement of a delivered email.
type Receipt struct {
	MessageID string
}
