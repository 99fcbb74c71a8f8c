// internal/workers/recommendation/send-recommendation/config.go
package sendrecommendation

import (
	"fmt"
	"time"

	"dining-concierge/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	FromEmail    string
	ToEmail      string
	Subject      string
	Timeout      time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	email := cfg.Notifications.Email
	return &Config{
		EmailEnabled: email.Enabled,
		FromEmail:    email.FromEmail,
		ToEmail:      email.ToEmail,
		Subject:      email.Subject,
		Timeout:      config.GetDuration(wc.Timeout),
	}
}

func (c *Config) Validate() error {
	if !c.EmailEnabled {
		return nil
	}
	if c.FromEmail == "" || c.ToEmail == "" {
		return fmt.Errorf("from and to email addresses are required when email is enabled")
	}
	if c.Subject == "" {
		return fmt.Errorf("email subject is required")
	}
	return nil
}
