// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	AWS           AWSConfig               `mapstructure:"aws"`
	Queue         QueueConfig             `mapstructure:"queue"`
	Lex           LexConfig               `mapstructure:"lex"`
	Search        SearchConfig            `mapstructure:"search"`
	Stores        StoresConfig            `mapstructure:"stores"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Frontend      FrontendConfig          `mapstructure:"frontend"`
	Yelp          YelpConfig              `mapstructure:"yelp"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	// Endpoint overrides every service endpoint (localstack, elasticmq).
	Endpoint string `mapstructure:"endpoint"`
	Tracing  bool   `mapstructure:"tracing"`
}

type QueueConfig struct {
	URL             string `mapstructure:"url"`
	MessageGroupID  string `mapstructure:"message_group_id"`
	WaitTimeSeconds int    `mapstructure:"wait_time_seconds"`
}

type LexConfig struct {
	BotID      string `mapstructure:"bot_id"`
	BotAliasID string `mapstructure:"bot_alias_id"`
	LocaleID   string `mapstructure:"locale_id"`
	Endpoint   string `mapstructure:"endpoint"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type SearchConfig struct {
	Index string `mapstructure:"index"`
	Size  int    `mapstructure:"size"`
}

// StoresConfig selects the backend of each store: "postgres" or "dynamodb" for
// restaurants, "redis" or "dynamodb" for user state.
type StoresConfig struct {
	Restaurants RestaurantStoreConfig `mapstructure:"restaurants"`
	UserState   UserStateStoreConfig  `mapstructure:"user_state"`
}

type RestaurantStoreConfig struct {
	Backend string `mapstructure:"backend"`
	Table   string `mapstructure:"table"`
}

type UserStateStoreConfig struct {
	Backend   string `mapstructure:"backend"`
	Table     string `mapstructure:"table"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetAddresses returns the configured addresses, falling back to URL.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the settings applicable to every handler.
type WorkerConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	Timeout      int  `mapstructure:"timeout"`       // milliseconds
	PollInterval int  `mapstructure:"poll_interval"` // milliseconds, poll mode only
}

// NotificationConfig holds the fixed sender/recipient of recommendation mail.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
		Subject   string `mapstructure:"subject"`
	} `mapstructure:"email"`
}

type FrontendConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

type YelpConfig struct {
	BaseURL  string   `mapstructure:"base_url"`
	APIKey   string   `mapstructure:"api_key"`
	Location string   `mapstructure:"location"`
	Cuisines []string `mapstructure:"cuisines"`
	Limit    int      `mapstructure:"limit"`
	MaxKeep  int      `mapstructure:"max_keep"`
	Timeout  int      `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listen_address"`
}
