// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Components accepted by ValidateFor.
const (
	ComponentFrontend   = "chat-frontend"
	ComponentDispatcher = "dining-dispatcher"
	ComponentWorker     = "recommendation-worker"
	ComponentLoader     = "restaurant-loader"
)

// Load reads configs/config.yaml, merges config.{APP_ENVIRONMENT}.yaml on top and lets
// environment variables override any key (queue.url -> QUEUE_URL).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key viper should resolve from the environment even when no
// config file is present (Lambda deployments ship none).
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "dining-concierge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.tracing", false)
	v.SetDefault("queue.url", "")
	v.SetDefault("queue.message_group_id", "DiningRequests")
	v.SetDefault("queue.wait_time_seconds", 20)
	v.SetDefault("lex.bot_id", "")
	v.SetDefault("lex.bot_alias_id", "")
	v.SetDefault("lex.locale_id", "en_US")
	v.SetDefault("lex.endpoint", "")
	v.SetDefault("lex.timeout", 10000)
	v.SetDefault("search.index", "restaurants")
	v.SetDefault("search.size", 5)
	v.SetDefault("stores.restaurants.backend", "dynamodb")
	v.SetDefault("stores.restaurants.table", "yelp-restaurants")
	v.SetDefault("stores.user_state.backend", "dynamodb")
	v.SetDefault("stores.user_state.table", "user-state")
	v.SetDefault("stores.user_state.key_prefix", "user_state:")
	v.SetDefault("database.postgres.host", "")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "")
	v.SetDefault("database.postgres.user", "")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.elasticsearch.url", "")
	v.SetDefault("database.elasticsearch.username", "")
	v.SetDefault("database.elasticsearch.password", "")
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("notifications.email.enabled", true)
	v.SetDefault("notifications.email.from_email", "")
	v.SetDefault("notifications.email.to_email", "")
	v.SetDefault("notifications.email.subject", "Recommended Restaurants")
	v.SetDefault("frontend.listen_address", ":8080")
	v.SetDefault("yelp.base_url", "https://api.yelp.com/v3")
	v.SetDefault("yelp.api_key", "")
	v.SetDefault("yelp.location", "Manhattan, NY")
	v.SetDefault("yelp.cuisines", []string{"Chinese", "Italian", "Mexican"})
	v.SetDefault("yelp.limit", 50)
	v.SetDefault("yelp.max_keep", 150)
	v.SetDefault("yelp.timeout", 15000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.listen_address", ":9090")
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from their conventional variable names when the
// config file left them blank.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Yelp.APIKey == "" {
		if val := os.Getenv("YELP_API_KEY"); val != "" {
			cfg.Yelp.APIKey = val
		}
	}
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Queue.URL == "" {
		if val := os.Getenv("SQS_QUEUE_URL"); val != "" {
			cfg.Queue.URL = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Queue.MessageGroupID == "" {
		cfg.Queue.MessageGroupID = "DiningRequests"
	}
	if cfg.Queue.WaitTimeSeconds <= 0 || cfg.Queue.WaitTimeSeconds > 20 {
		cfg.Queue.WaitTimeSeconds = 20
	}

	if cfg.Lex.LocaleID == "" {
		cfg.Lex.LocaleID = "en_US"
	}
	if cfg.Lex.Timeout == 0 {
		cfg.Lex.Timeout = 10000
	}

	if cfg.Search.Index == "" {
		cfg.Search.Index = "restaurants"
	}
	if cfg.Search.Size == 0 {
		cfg.Search.Size = 5
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Notifications.Email.Subject == "" {
		cfg.Notifications.Email.Subject = "Recommended Restaurants"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Workers == nil {
		cfg.Workers = map[string]WorkerConfig{}
	}
	for key, worker := range cfg.Workers {
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.PollInterval == 0 {
			worker.PollInterval = 1000
		}
		cfg.Workers[key] = worker
	}

	if cfg.Yelp.Limit == 0 {
		cfg.Yelp.Limit = 50
	}
	if cfg.Yelp.MaxKeep == 0 {
		cfg.Yelp.MaxKeep = 150
	}
	if cfg.Yelp.Timeout == 0 {
		cfg.Yelp.Timeout = 15000
	}
}

// validateConfig checks fields every binary depends on. Component-specific requirements
// live in ValidateFor.
func validateConfig(cfg *Config) error {
	switch cfg.Stores.Restaurants.Backend {
	case "postgres", "dynamodb":
	default:
		return fmt.Errorf("stores.restaurants.backend must be postgres or dynamodb, got %q", cfg.Stores.Restaurants.Backend)
	}
	switch cfg.Stores.UserState.Backend {
	case "redis", "dynamodb":
	default:
		return fmt.Errorf("stores.user_state.backend must be redis or dynamodb, got %q", cfg.Stores.UserState.Backend)
	}
	if cfg.AWS.Region == "" {
		return fmt.Errorf("aws.region is required")
	}
	return nil
}

// ValidateFor checks the settings the named binary cannot run without.
func (c *Config) ValidateFor(component string) error {
	switch component {
	case ComponentFrontend:
		if c.Lex.BotID == "" || c.Lex.BotAliasID == "" {
			return fmt.Errorf("lex.bot_id and lex.bot_alias_id are required")
		}
		return c.validateUserStateStore()
	case ComponentDispatcher:
		if c.Queue.URL == "" {
			return fmt.Errorf("queue.url is required")
		}
	case ComponentWorker:
		if c.Queue.URL == "" {
			return fmt.Errorf("queue.url is required")
		}
		if len(c.Database.Elasticsearch.GetAddresses()) == 0 {
			return fmt.Errorf("database.elasticsearch.addresses or url is required")
		}
		if c.Notifications.Email.FromEmail == "" || c.Notifications.Email.ToEmail == "" {
			return fmt.Errorf("notifications.email.from_email and to_email are required")
		}
		if err := c.validateRestaurantStore(); err != nil {
			return err
		}
		return c.validateUserStateStore()
	case ComponentLoader:
		return c.validateRestaurantStore()
	default:
		return fmt.Errorf("unknown component %q", component)
	}
	return nil
}

func (c *Config) validateRestaurantStore() error {
	if c.Stores.Restaurants.Backend == "postgres" {
		if c.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if c.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if c.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
		return nil
	}
	if c.Stores.Restaurants.Table == "" {
		return fmt.Errorf("stores.restaurants.table is required")
	}
	return nil
}

func (c *Config) validateUserStateStore() error {
	if c.Stores.UserState.Backend == "redis" {
		if c.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required")
		}
		return nil
	}
	if c.Stores.UserState.Table == "" {
		return fmt.Errorf("stores.user_state.table is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:      true,
		Timeout:      30000,
		PollInterval: 1000,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
