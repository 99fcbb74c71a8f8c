package etl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dining-concierge/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBulkServer(t *testing.T, status int, response string, gotBody *string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants/_bulk", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("refresh"))
		raw, _ := io.ReadAll(r.Body)
		if gotBody != nil {
			*gotBody = string(raw)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func newIndexer(t *testing.T, url string) *Indexer {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	require.NoError(t, err)
	return NewIndexer(client, "restaurants", logger.NewTestLogger(t))
}

func TestIndexer_Index(t *testing.T) {
	var got string
	server := newBulkServer(t, http.StatusOK, `{"took":5,"errors":true,"items":[
		{"index":{"_id":"b1","status":201}},
		{"index":{"_id":"b2","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad"}}}
	]}`, &got)

	body := []byte("{\"index\":{\"_id\":\"b1\"}}\n{\"BusinessID\":\"b1\",\"Cuisine\":\"Chinese\"}\n")
	res, err := newIndexer(t, server.URL).Index(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Indexed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, string(body), got)
}

func TestIndexer_RequestFailure(t *testing.T) {
	server := newBulkServer(t, http.StatusServiceUnavailable, `{"error":"unavailable"}`, nil)

	_, err := newIndexer(t, server.URL).Index(context.Background(), []byte("{}\n"))
	assert.Error(t, err)
}
