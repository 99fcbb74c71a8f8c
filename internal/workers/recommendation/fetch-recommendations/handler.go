package fetchrecommendations

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"dining-concierge/internal/common/aws"
	apperrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
	"dining-concierge/internal/repository"
	"dining-concierge/internal/workers/recommendation/fetch-recommendations/queries"

	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "fetch-recommendations"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	store  repository.RestaurantRepository
	logger logger.Logger
	pick   func(n int) int
}

func NewHandler(config *Config, client *elasticsearch.Client, store repository.RestaurantRepository, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		pick:   rand.IntN,
	}
}

// Execute searches by cuisine and resolves each hit against the restaurant store. Hits
// without a business id, lookup misses and lookup errors are skipped. Only a failed search
// is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, done := aws.BeginSubsegment(ctx, "FetchRecommendations.Search")
	result, err := queries.Execute(ctx, h.client, queries.CuisineQuery{
		Index:   h.config.Index,
		Cuisine: input.Cuisine,
		Size:    h.config.Size,
	})
	done(err)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(h.config.Index, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err))
	}

	out := &Output{
		Recommendations: []string{},
		TotalHits:       result.Hits.Total.Value,
	}
	if len(result.Hits.Hits) == 0 {
		h.logger.Info("no matching restaurants in search index", map[string]interface{}{
			"cuisine": input.Cuisine,
		})
		metrics.RecommendationsFetched.WithLabelValues(input.Cuisine).Observe(0)
		return out, nil
	}

	for idx, hit := range result.Hits.Hits {
		businessID := hit.Source.BusinessID
		if businessID == "" {
			h.logger.Warn("search hit without BusinessID", map[string]interface{}{
				"hitId": hit.ID,
			})
			out.Skipped++
			continue
		}

		record, err := h.lookup(ctx, businessID)
		if err != nil {
			h.logger.Error("restaurant lookup failed", map[string]interface{}{
				"businessId": businessID,
				"error":      err,
			})
			out.Skipped++
			continue
		}
		if record == nil {
			h.logger.Warn("restaurant not found in store", map[string]interface{}{
				"businessId": businessID,
			})
			out.Skipped++
			continue
		}

		out.Recommendations = append(out.Recommendations, FormatRecommendation(*record, idx+1))
	}

	metrics.RecommendationsFetched.WithLabelValues(input.Cuisine).Observe(float64(len(out.Recommendations)))
	h.logger.Info("recommendations fetched", map[string]interface{}{
		"cuisine": input.Cuisine,
		"hits":    len(result.Hits.Hits),
		"found":   len(out.Recommendations),
		"skipped": out.Skipped,
	})
	return out, nil
}

// lookup returns one record for businessID, chosen at random among duplicates, or nil.
func (h *Handler) lookup(ctx context.Context, businessID string) (*models.RestaurantRecord, error) {
	records, err := h.store.GetByBusinessID(ctx, businessID)
	if err != nil {
		return nil, apperrors.NewStoreLookupFailedError("restaurant store", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	r := records[h.pick(len(records))]
	return &r, nil
}

// FormatRecommendation renders the fixed text block for one restaurant. position is 1-based.
func FormatRecommendation(r models.RestaurantRecord, position int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Option %d:\n", position)
	fmt.Fprintf(&b, "Name: %s\n", orDefault(r.Name, "Unknown"))
	fmt.Fprintf(&b, "Cuisine: %s\n", orDefault(r.Cuisine, "Unknown"))
	fmt.Fprintf(&b, "Address: %s\n", orDefault(r.Address, "Unknown"))
	fmt.Fprintf(&b, "Rating: %s\n", formatRating(r.Rating))
	b.WriteString(separator + "\n")
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// formatRating prints 4.5 as "4.5" and 4 as "4"; an unset rating is "N/A".
func formatRating(rating float64) string {
	if rating <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
