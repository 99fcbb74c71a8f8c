package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex   = errors.New("index name is required")
	ErrMissingCuisine = errors.New("cuisine is required")
)

// CuisineQuery selects up to Size restaurants whose Cuisine matches.
type CuisineQuery struct {
	Index   string
	Cuisine string
	Size    int
}

// Body returns the search body {"size":n,"query":{"match":{"Cuisine":c}}}.
func (q CuisineQuery) Body() map[string]interface{} {
	return map[string]interface{}{
		"size": q.Size,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"Cuisine": q.Cuisine,
			},
		},
	}
}

// BuildQuery builds the search request for q.
func BuildQuery(q CuisineQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}
	if q.Cuisine == "" {
		return nil, ErrMissingCuisine
	}
	if q.Size <= 0 {
		q.Size = 5
	}

	body, err := json.Marshal(q.Body())
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  bytes.NewReader(body),
	}, nil
}

// Hit is one search hit; only the business id is indexed for lookups.
type Hit struct {
	ID     string `json:"_id"`
	Source struct {
		BusinessID string `json:"BusinessID"`
		Cuisine    string `json:"Cuisine"`
	} `json:"_source"`
}

// SearchResponse is the subset of the search API response used here.
type SearchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}
