package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
)

// SendFoundEmail queues the owner email for a find and waits for the
// delivery attempt. If ctx ends or the wait cap passes first the email is
// still delivered; only the wait is abandoned.
func (s *Service) SendFoundEmail(ctx context.Context, details mail.FoundItemDetails) (domain.Receipt, error) {
	details.OwnerEmail = strings.TrimSpace(details.OwnerEmail)
	details.ItemName = strings.TrimSpace(details.ItemName)

	email, err := mail.FoundItemEmail(details)
	if err != nil {
		return domain.Receipt{}, err
	}
	return s.send(ctx, email)
}

// SendEmail queues a free-form email and waits for the delivery attempt.
func (s *Service) SendEmail(ctx context.Context, input SendEmailInput) (domain.Receipt, error) {
	input.To = strings.TrimSpace(input.To)

	if err := input.Validate(); err != nil {
		return domain.Receipt{}, err
	}
	return s.send(ctx, domain.Email{To: input.To, Subject: input.Subject, HTML: input.HTML})
}

func (s *Service) send(ctx context.Context, email domain.Email) (domain.Receipt, error) {
	pending, err := s.mail.Enqueue(ctx, email)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("matching.send enqueue: %w", err)
	}

	waitCtx := ctx
	if s.cfg.EmailWaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.cfg.EmailWaitTimeout)
		defer cancel()
	}

	receipt, err := pending.Wait(waitCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			s.log.WarnContext(ctx, "email still queued after wait cap",
				slog.String("to", email.To),
				slog.Duration("waited", s.cfg.EmailWaitTimeout))
			return domain.Receipt{}, fmt.Errorf("matching.send: %w", mailqueue.ErrStillPending)
		}
		return domain.Receipt{}, fmt.Errorf("matching.send: %w", err)
	}

	s.log.InfoContext(ctx, "email sent",
		slog.String("to", email.To),
		slog.String("message_id", receipt.MessageID))

	return receipt, nil
}
