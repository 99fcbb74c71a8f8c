// internal/workers/conversation/chat-frontend/config.go
package chatfrontend

import (
	"fmt"
	"time"

	"dining-concierge/internal/common/config"
)

type Config struct {
	ListenAddress string
	Timeout       time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		ListenAddress: cfg.Frontend.ListenAddress,
		Timeout:       config.GetDuration(wc.Timeout),
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
