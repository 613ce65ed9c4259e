package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
)

// Warnings reported by ReportFound. None of them fail the report.
const (
	WarnOwnerNotFound      = "owner not found"
	WarnOwnerLookupFailed  = "owner could not be looked up"
	WarnOwnerEmailMissing  = "owner email not available"
	WarnNotificationFailed = "notification could not be saved"
	WarnRealtimeFailed     = "live notification could not be sent"
	WarnEmailNotQueued     = "email could not be queued"
)

const (
	dateFoundLayout = "2006-01-02"
	unknownFinder   = "a finder"
)

// ReportResult describes what happened around a persisted report.
type ReportResult struct {
	FoundItem *domain.FoundItem
	// Notified is true when a notification was appended to the owner.
	Notified bool
	// Delivered counts live connections that accepted the event.
	Delivered   int
	EmailQueued bool
	// Email resolves when the worker has attempted delivery. Nil if no email
	// was queued.
	Email    *mailqueue.Pending
	Warnings []string
}

func (r *ReportResult) warn(w string) {
	r.Warnings = append(r.Warnings, w)
}

// ReportFound persists a found-item report and notifies the owner.
//
// Only validation and persistence can fail the call. Owner lookup,
// notification, live publish and email are best-effort and surface as
// warnings on the result.
func (s *Service) ReportFound(ctx context.Context, input ReportFoundInput) (*ReportResult, error) {
	input.normalize()

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Persist
	item, err := s.foundItems.Create(ctx, &domain.FoundItem{
		LostPerson:       input.LostPerson,
		FoundPerson:      input.FoundPerson,
		FoundPersonPhone: input.FoundPersonPhone,
		LocationFound:    input.LocationFound,
		DateFound:        input.DateFound,
		Name:             input.Name,
		Image:            input.Image,
		Description:      input.Description,
		LostItemID:       input.LostItemID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// found_person is the only foreign key on found_items.
			return nil, domain.NewValidationError("foundPerson", "user not found")
		}
		return nil, fmt.Errorf("matching.ReportFound create: %w", err)
	}
	s.reported.Inc()

	result := &ReportResult{FoundItem: item}
	log := s.log.With(
		slog.String("found_item_id", item.ID.String()),
		slog.String("owner_id", item.LostPerson.String()),
	)

	// Step 3: Owner lookup
	owner, err := s.users.GetByID(ctx, item.LostPerson)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.InfoContext(ctx, "found item reported for unknown owner")
			result.warn(WarnOwnerNotFound)
		} else {
			log.ErrorContext(ctx, "owner lookup failed", slog.String("error", err.Error()))
			result.warn(WarnOwnerLookupFailed)
		}
		return result, nil
	}

	finderName := s.finderName(ctx, item)

	// Steps 4 and 5: durable notification, then live push.
	s.notifyOwner(ctx, log, owner, item, finderName, result)

	// Step 6: Email
	if !owner.HasEmail() {
		log.WarnContext(ctx, "owner has no email, skipping email")
		result.warn(WarnOwnerEmailMissing)
	} else if s.cfg.AutoEmail() {
		s.queueOwnerEmail(ctx, log, owner, item, finderName, result)
	}

	log.InfoContext(ctx, "found item reported",
		slog.Bool("notified", result.Notified),
		slog.Int("delivered", result.Delivered),
		slog.Bool("email_queued", result.EmailQueued),
	)

	return result, nil
}

func (s *Service) finderName(ctx context.Context, item *domain.FoundItem) string {
	finder, err := s.users.GetByID(ctx, item.FoundPerson)
	if err != nil || finder.Username == "" {
		return unknownFinder
	}
	return finder.Username
}

func (s *Service) notifyOwner(ctx context.Context, log *slog.Logger, owner *domain.User, item *domain.FoundItem, finderName string, result *ReportResult) {
	message := fmt.Sprintf(`Your lost item "%s" has been found by %s.`, item.Name, finderName)

	n, err := s.notifications.Append(ctx, owner.ID, message)
	if err != nil {
		log.ErrorContext(ctx, "append notification failed", slog.String("error", err.Error()))
		result.warn(WarnNotificationFailed)
		return
	}
	result.Notified = true

	delivered, err := s.notifier.Publish(ctx, owner.ID, *n)
	if err != nil {
		log.WarnContext(ctx, "live notification failed", slog.String("error", err.Error()))
		result.warn(WarnRealtimeFailed)
		return
	}
	result.Delivered = delivered
}

func (s *Service) queueOwnerEmail(ctx context.Context, log *slog.Logger, owner *domain.User, item *domain.FoundItem, finderName string, result *ReportResult) {
	email, err := mail.FoundItemEmail(mail.FoundItemDetails{
		OwnerEmail:    owner.Email,
		ItemName:      item.Name,
		FinderName:    finderName,
		FinderPhone:   item.FoundPersonPhone,
		LocationFound: item.LocationFound,
		DateFound:     item.DateFound.Format(dateFoundLayout),
		Description:   item.Description,
	})
	if err != nil {
		log.ErrorContext(ctx, "render owner email failed", slog.String("error", err.Error()))
		result.warn(WarnEmailNotQueued)
		return
	}

	pending, err := s.mail.Enqueue(ctx, email)
	if err != nil {
		log.WarnContext(ctx, "owner email not queued", slog.String("error", err.Error()))
		result.warn(WarnEmailNotQueued)
		return
	}
	result.EmailQueued = true
	result.Email = pending
}
