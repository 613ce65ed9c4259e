package config

import (
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0 (got %d)", c.Server.RateLimit)
	}

	if c.Matching.EmailWaitTimeout <= 0 || c.Matching.EmailWaitTimeout >= c.Server.WriteTimeout {
		return fmt.Errorf("matching.email_wait_timeout must be in (0, server.write_timeout=%v) (got %v)",
			c.Server.WriteTimeout, c.Matching.EmailWaitTimeout)
	}

	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	if c.Notification.ReadRetentionDays <= 0 {
		return fmt.Errorf("notification.read_retention_days must be > 0 (got %d)", c.Notification.ReadRetentionDays)
	}

	return nil
}

func (m *MailConfig) validate() error {
	if m.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", m.QueueSize)
	}
	if m.SendTimeout < time.Second {
		return fmt.Errorf("send_timeout must be >= 1s (got %v)", m.SendTimeout)
	}
	if m.Port <= 0 || m.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535] (got %d)", m.Port)
	}
	if sender := m.Sender(); sender != "" {
		if _, err := mail.ParseAddress(sender); err != nil {
			return fmt.Errorf("from %q: %w", sender, err)
		}
	}
	return nil
}
