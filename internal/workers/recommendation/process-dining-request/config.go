// internal/workers/recommendation/process-dining-request/config.go
package processdiningrequest

import (
	"fmt"
	"time"

	"dining-concierge/internal/common/config"
)

type Config struct {
	Enabled      bool
	Timeout      time.Duration
	PollInterval time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Enabled:      wc.Enabled,
		Timeout:      config.GetDuration(wc.Timeout),
		PollInterval: config.GetDuration(wc.PollInterval),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval must not be negative")
	}
	return nil
}
