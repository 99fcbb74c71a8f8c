package fetchrecommendations

import (
	"fmt"
	"time"

	"dining-concierge/internal/common/config"
)

type Config struct {
	Index   string
	Size    int
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Index:   cfg.Search.Index,
		Size:    cfg.Search.Size,
		Timeout: config.GetDuration(wc.Timeout),
	}
}

func (c *Config) Validate() error {
	if c.Index == "" {
		return fmt.Errorf("search index is required")
	}
	if c.Size <= 0 {
		return fmt.Errorf("search size must be positive")
	}
	return nil
}
