// Package mail delivers rendered emails over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/heartmarshall/lostfound-backend/internal/config"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// ErrAuth is returned when the SMTP server rejects the configured credentials.
var ErrAuth = errors.New("mail: authentication failed")

// defaultSendTimeout bounds a send whose context carries no deadline.
const defaultSendTimeout = 30 * time.Second

// SMTPTransport sends one message per connection to an SMTP relay.
// It upgrades with STARTTLS when the server offers it.
type SMTPTransport struct {
	cfg       config.MailConfig
	tlsConfig *tls.Config
	now       func() time.Time
}

// NewSMTPTransport creates a transport for the given relay settings.
func NewSMTPTransport(cfg config.MailConfig) *SMTPTransport {
	return &SMTPTransport{
		cfg:       cfg,
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		now:       time.Now,
	}
}

// Send delivers msg and returns the Message-ID it was sent with.
// The whole SMTP exchange is bounded by ctx.
func (t *SMTPTransport) Send(ctx context.Context, msg domain.Email) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, fmt.Errorf("mail: send: %w", err)
	}

	m, err := t.compose(msg)
	if err != nil {
		return domain.Receipt{}, err
	}

	client, err := t.client(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return domain.Receipt{}, fmt.Errorf("mail: send: %w", cerr)
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return domain.Receipt{}, fmt.Errorf("mail: send: %w", context.DeadlineExceeded)
		}
		if isAuthRejection(err) {
			return domain.Receipt{}, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return domain.Receipt{}, fmt.Errorf("mail: send: %w", err)
	}

	return domain.Receipt{MessageID: m.GetMessageID()}, nil
}

// client builds a go-mail client whose connection timeout matches what is
// left of ctx.
func (t *SMTPTransport) client(ctx context.Context) (*gomail.Client, error) {
	timeout := defaultSendTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, fmt.Errorf("mail: send: %w", context.DeadlineExceeded)
		}
	}

	opts := []gomail.Option{
		gomail.WithPort(t.cfg.Port),
		gomail.WithTimeout(timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTLSConfig(t.tlsConfig),
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.cfg.Username),
			gomail.WithPassword(t.cfg.Password),
		)
	}

	c, err := gomail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: client: %w", err)
	}
	return c, nil
}

// compose builds the message: sender, recipient, subject, HTML body and any
// extra headers in canonical form.
func (t *SMTPTransport) compose(msg domain.Email) (*gomail.Msg, error) {
	m := gomail.NewMsg()

	from := t.cfg.Sender()
	var err error
	if t.cfg.FromName != "" {
		err = m.FromFormat(t.cfg.FromName, from)
	} else {
		err = m.From(from)
	}
	if err != nil {
		return nil, fmt.Errorf("mail: from %q: %w", from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail: to %q: %w", msg.To, err)
	}

	m.Subject(msg.Subject)
	m.SetDateWithValue(t.now())
	m.SetMessageIDWithValue(newMessageID(from))
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		m.SetGenHeader(gomail.Header(textproto.CanonicalMIMEHeaderKey(k)), msg.Headers[k])
	}

	return m, nil
}

// newMessageID returns the id part of a Message-ID, without angle brackets.
func newMessageID(from string) string {
	domainPart := "localhost"
	if i := strings.LastIndexByte(from, '@'); i >= 0 && i < len(from)-1 {
		domainPart = from[i+1:]
	}
	return uuid.NewString() + "@" + domainPart
}

// isAuthRejection reports SMTP replies that mean the credentials were refused.
func isAuthRejection(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return true
		}
		return false
	}
	return strings.Contains(err.Error(), "SMTP AUTH failed")
}

// LogTransport records messages in the log instead of sending them.
// It is used when no SMTP credentials are configured.
type LogTransport struct {
	log *slog.Logger
}

// NewLogTransport creates a transport that only logs.
func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log.With("transport", "log")}
}

// Send logs msg and returns a synthetic receipt.
func (t *LogTransport) Send(ctx context.Context, msg domain.Email) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	id := "<" + newMessageID("log@localhost") + ">"
	t.log.InfoContext(ctx, "email not sent, no SMTP credentials",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("message_id", id),
	)
	return domain.Receipt{MessageID: id}, nil
}
