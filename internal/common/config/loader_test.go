package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "DiningRequests", cfg.Queue.MessageGroupID)
	assert.Equal(t, 20, cfg.Queue.WaitTimeSeconds)
	assert.Equal(t, "restaurants", cfg.Search.Index)
	assert.Equal(t, 5, cfg.Search.Size)
	assert.Equal(t, "en_US", cfg.Lex.LocaleID)
	assert.Equal(t, "dynamodb", cfg.Stores.Restaurants.Backend)
	assert.Equal(t, "user-state", cfg.Stores.UserState.Table)
	assert.Equal(t, "Recommended Restaurants", cfg.Notifications.Email.Subject)
	assert.Equal(t, []string{"Chinese", "Italian", "Mexican"}, cfg.Yelp.Cuisines)
	assert.Equal(t, 150, cfg.Yelp.MaxKeep)
}

func TestLoadFromFile_EnvOverridesAndExpansion(t *testing.T) {
	t.Setenv("QUEUE_URL", "https://sqs.us-east-1.amazonaws.com/123/dining.fifo")
	t.Setenv("TEST_FROM_EMAIL", "concierge@example.com")

	cfg, err := LoadFromFile(writeConfig(t, `
notifications:
  email:
    from_email: ${TEST_FROM_EMAIL}
workers:
  process-dining-request:
    enabled: true
    poll_interval: 250
`))
	require.NoError(t, err)

	assert.Equal(t, "https://sqs.us-east-1.amazonaws.com/123/dining.fifo", cfg.Queue.URL)
	assert.Equal(t, "concierge@example.com", cfg.Notifications.Email.FromEmail)

	wc := GetWorkerConfig(cfg, "process-dining-request")
	assert.Equal(t, 30000, wc.Timeout)
	assert.Equal(t, 250, wc.PollInterval)
}

func TestLoadFromFile_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "stores:\n  restaurants:\n    backend: mongo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stores.restaurants.backend")
}

func TestValidateFor(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Error(t, cfg.ValidateFor(ComponentDispatcher))
	assert.Error(t, cfg.ValidateFor(ComponentFrontend))
	assert.NoError(t, cfg.ValidateFor(ComponentLoader))
	assert.Error(t, cfg.ValidateFor("unknown"))

	cfg.Queue.URL = "https://queue"
	assert.NoError(t, cfg.ValidateFor(ComponentDispatcher))

	assert.Error(t, cfg.ValidateFor(ComponentWorker))
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"
	cfg.Notifications.Email.FromEmail = "a@example.com"
	cfg.Notifications.Email.ToEmail = "b@example.com"
	assert.NoError(t, cfg.ValidateFor(ComponentWorker))

	cfg.Stores.UserState.Backend = "redis"
	assert.Error(t, cfg.ValidateFor(ComponentWorker))
	cfg.Database.Redis.Address = "localhost:6379"
	assert.NoError(t, cfg.ValidateFor(ComponentWorker))
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	wc := GetWorkerConfig(&Config{}, "missing")
	assert.True(t, wc.Enabled)
	assert.Equal(t, 30*time.Second, GetDuration(wc.Timeout))
	assert.True(t, IsWorkerEnabled(&Config{}, "missing"))
}
