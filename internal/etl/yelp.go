// Package etl collects restaurant data and loads it into the search index and the
// restaurant store.
package etl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dining-concierge/internal/common/config"
	apphttp "dining-concierge/internal/common/http"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const (
	DefaultYelpURL  = "https://api.yelp.com/v3"
	DefaultLocation = "Manhattan, NY"
	DefaultLimit    = 50

	unknown = "Unknown"
)

// DefaultCuisines are the cuisines the chatbot accepts.
var DefaultCuisines = []string{"Chinese", "Italian", "Mexican"}

type yelpLocation struct {
	Address1 *string `json:"address1"`
	City     *string `json:"city"`
	ZipCode  *string `json:"zip_code"`
}

type yelpBusiness struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    yelpLocation `json:"location"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
}

type yelpSearchResponse struct {
	Businesses []yelpBusiness `json:"businesses"`
	Total      int            `json:"total"`
}

// YelpFetcher queries the Yelp Fusion business search API.
type YelpFetcher struct {
	client   *apphttp.Client
	baseURL  string
	apiKey   string
	location string
	limit    int
	logger   logger.Logger
	now      func() time.Time
}

func NewYelpFetcher(cfg config.YelpConfig, log logger.Logger) *YelpFetcher {
	f := &YelpFetcher{
		client:   apphttp.NewClient(config.GetDuration(cfg.Timeout)),
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		location: cfg.Location,
		limit:    cfg.Limit,
		logger:   log.WithFields(map[string]interface{}{"component": "yelp"}),
		now:      time.Now,
	}
	if f.baseURL == "" {
		f.baseURL = DefaultYelpURL
	}
	if f.location == "" {
		f.location = DefaultLocation
	}
	if f.limit <= 0 {
		f.limit = DefaultLimit
	}
	return f
}

// WithHTTPClient swaps the transport, mainly for tests.
func (f *YelpFetcher) WithHTTPClient(c *apphttp.Client) *YelpFetcher {
	f.client = c
	return f
}

// FetchAll collects restaurants for every cuisine in order. Records keep the cuisine they
// were searched under.
func (f *YelpFetcher) FetchAll(ctx context.Context, cuisines []string) ([]models.RestaurantRecord, error) {
	var all []models.RestaurantRecord
	for _, cuisine := range cuisines {
		records, err := f.Fetch(ctx, cuisine)
		if err != nil {
			return all, err
		}
		all = append(all, records...)
		f.logger.Info("collected restaurants", map[string]interface{}{
			"cuisine": cuisine,
			"batch":   len(records),
			"total":   len(all),
		})
	}
	return all, nil
}

// Fetch runs one search for "{cuisine} restaurants".
func (f *YelpFetcher) Fetch(ctx context.Context, cuisine string) ([]models.RestaurantRecord, error) {
	q := url.Values{}
	q.Set("term", cuisine+" restaurants")
	q.Set("location", f.location)
	q.Set("limit", strconv.Itoa(f.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/businesses/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build yelp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Accept", "application/json")

	var resp yelpSearchResponse
	if err := f.client.DoJSON(req, &resp); err != nil {
		return nil, fmt.Errorf("yelp search for %s: %w", cuisine, err)
	}

	insertedAt := f.now().UTC().Format(time.RFC3339)
	records := make([]models.RestaurantRecord, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		records = append(records, models.RestaurantRecord{
			BusinessID:          b.ID,
			Name:                b.Name,
			Cuisine:             cuisine,
			Address:             orUnknown(b.Location.Address1),
			City:                orUnknown(b.Location.City),
			ZipCode:             orUnknown(b.Location.ZipCode),
			Rating:              b.Rating,
			Reviews:             b.ReviewCount,
			InsertedAtTimestamp: insertedAt,
		})
	}
	return records, nil
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknown
	}
	return *s
}
