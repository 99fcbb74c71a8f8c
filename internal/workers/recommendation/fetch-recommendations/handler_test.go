package fetchrecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockRestaurantStore struct {
	Records map[string][]models.RestaurantRecord
	Errors  map[string]error
	Lookups []string
}

func (m *MockRestaurantStore) GetByBusinessID(_ context.Context, id string) ([]models.RestaurantRecord, error) {
	m.Lookups = append(m.Lookups, id)
	if err := m.Errors[id]; err != nil {
		return nil, err
	}
	return m.Records[id], nil
}

func (m *MockRestaurantStore) Put(context.Context, models.RestaurantRecord) error {
	return nil
}

// ==========================
// Test Helper Functions
// ==========================

func newSearchServer(t *testing.T, status int, body string, seen *map[string]interface{}) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants/_search", r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func createTestHandler(t *testing.T, url string, store *MockRestaurantStore) *Handler {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	require.NoError(t, err)

	h := NewHandler(&Config{Index: "restaurants", Size: 5, Timeout: 5 * time.Second}, client, store, logger.NewTestLogger(t))
	h.pick = func(int) int { return 0 }
	return h
}

func hitsBody(ids ...string) string {
	hits := make([]map[string]interface{}, 0, len(ids))
	for i, id := range ids {
		src := map[string]interface{}{"Cuisine": "Chinese"}
		if id != "" {
			src["BusinessID"] = id
		}
		hits = append(hits, map[string]interface{}{"_id": "doc" + string(rune('0'+i)), "_source": src})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"took": 3,
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(ids)},
			"hits":  hits,
		},
	})
	return string(body)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_ResolvesHitsInOrder(t *testing.T) {
	var query map[string]interface{}
	server := newSearchServer(t, http.StatusOK, hitsBody("b1", "b2"), &query)
	store := &MockRestaurantStore{Records: map[string][]models.RestaurantRecord{
		"b1": {{BusinessID: "b1", Name: "Joe's Shanghai", Cuisine: "Chinese", Address: "46 Bowery", Rating: 4.5}},
		"b2": {{BusinessID: "b2", Name: "Nom Wah Tea Parlor", Cuisine: "Chinese", Address: "13 Doyers St", Rating: 4}},
	}}

	out, err := createTestHandler(t, server.URL, store).Execute(context.Background(), &Input{Cuisine: "Chinese"})
	require.NoError(t, err)

	assert.Equal(t, float64(5), query["size"])
	assert.Equal(t, map[string]interface{}{"match": map[string]interface{}{"Cuisine": "Chinese"}}, query["query"])

	require.Len(t, out.Recommendations, 2)
	assert.Contains(t, out.Recommendations[0], "Option 1:\nName: Joe's Shanghai\n")
	assert.Contains(t, out.Recommendations[1], "Option 2:\nName: Nom Wah Tea Parlor\n")
	assert.Contains(t, out.Recommendations[1], "Rating: 4\n")
	assert.Equal(t, []string{"b1", "b2"}, store.Lookups)
}

func TestExecute_SkipsMissingIDsMissesAndErrors(t *testing.T) {
	server := newSearchServer(t, http.StatusOK, hitsBody("", "gone", "broken", "b4"), nil)
	store := &MockRestaurantStore{
		Records: map[string][]models.RestaurantRecord{
			"b4": {{BusinessID: "b4", Name: "Xi'an Famous Foods"}},
		},
		Errors: map[string]error{"broken": errors.New("throttled")},
	}

	out, err := createTestHandler(t, server.URL, store).Execute(context.Background(), &Input{Cuisine: "Chinese"})
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, 3, out.Skipped)
	assert.Contains(t, out.Recommendations[0], "Option 4:")
	assert.Equal(t, []string{"gone", "broken", "b4"}, store.Lookups)
}

func TestExecute_ZeroHitsIsNotAnError(t *testing.T) {
	server := newSearchServer(t, http.StatusOK, hitsBody(), nil)
	store := &MockRestaurantStore{}

	out, err := createTestHandler(t, server.URL, store).Execute(context.Background(), &Input{Cuisine: "Mexican"})
	require.NoError(t, err)
	assert.Empty(t, out.Recommendations)
	assert.Empty(t, store.Lookups)
}

func TestExecute_SearchFailure(t *testing.T) {
	server := newSearchServer(t, http.StatusInternalServerError, `{"error":"boom"}`, nil)

	_, err := createTestHandler(t, server.URL, &MockRestaurantStore{}).Execute(context.Background(), &Input{Cuisine: "Italian"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
	assert.Equal(t, apperrors.ErrCodeSearchQueryFailed, apperrors.CodeOf(err))
}

func TestExecute_PicksAmongDuplicates(t *testing.T) {
	server := newSearchServer(t, http.StatusOK, hitsBody("dup"), nil)
	store := &MockRestaurantStore{Records: map[string][]models.RestaurantRecord{
		"dup": {
			{BusinessID: "dup", Name: "First Copy"},
			{BusinessID: "dup", Name: "Second Copy"},
		},
	}}

	h := createTestHandler(t, server.URL, store)
	var sizes []int
	h.pick = func(n int) int {
		sizes = append(sizes, n)
		return n - 1
	}

	out, err := h.Execute(context.Background(), &Input{Cuisine: "Chinese"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sizes)
	assert.Contains(t, out.Recommendations[0], "Name: Second Copy")
}

func TestFormatRecommendation(t *testing.T) {
	block := FormatRecommendation(models.RestaurantRecord{Name: "Carbone", Rating: 4.3}, 3)

	expected := strings.Join([]string{
		"",
		"------------------------------------------",
		"Option 3:",
		"Name: Carbone",
		"Cuisine: Unknown",
		"Address: Unknown",
		"Rating: 4.3",
		"------------------------------------------",
		"",
	}, "\n")
	assert.Equal(t, expected, block)
	assert.Contains(t, FormatRecommendation(models.RestaurantRecord{}, 1), "Rating: N/A\n")
}
