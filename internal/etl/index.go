package etl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"dining-concierge/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

// IndexResult summarizes one bulk request.
type IndexResult struct {
	Indexed int
	Failed  int
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// Indexer pushes bulk bodies into the search index.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "indexer", "index": index}),
	}
}

// Index sends body through the Bulk API. Per-item failures are counted and logged, a failed
// request is an error.
func (i *Indexer) Index(ctx context.Context, body []byte) (*IndexResult, error) {
	res, err := i.client.Bulk(
		bytes.NewReader(body),
		i.client.Bulk.WithContext(ctx),
		i.client.Bulk.WithIndex(i.index),
		i.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return nil, fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("bulk request: %s", res.Status())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode bulk response: %w", err)
	}

	result := &IndexResult{}
	for _, item := range parsed.Items {
		for _, op := range item {
			if op.Error != nil || op.Status > 299 {
				result.Failed++
				fields := map[string]interface{}{"id": op.ID, "status": op.Status}
				if op.Error != nil {
					fields["reason"] = op.Error.Reason
				}
				i.logger.Warn("bulk item failed", fields)
				continue
			}
			result.Indexed++
		}
	}

	i.logger.Info("bulk index complete", map[string]interface{}{
		"indexed": result.Indexed,
		"failed":  result.Failed,
	})
	return result, nil
}
