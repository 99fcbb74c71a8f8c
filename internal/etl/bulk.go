package etl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dining-concierge/internal/models"
)

type bulkAction struct {
	Index struct {
		ID string `json:"_id"`
	} `json:"index"`
}

// BuildBulk renders records as a bulk NDJSON body: one index action keyed by BusinessID
// followed by the slim search document, each on its own line.
func BuildBulk(records []models.RestaurantRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, r := range records {
		var action bulkAction
		action.Index.ID = r.BusinessID
		if err := enc.Encode(action); err != nil {
			return nil, fmt.Errorf("encode action for %s: %w", r.BusinessID, err)
		}
		if err := enc.Encode(models.SearchDocument{BusinessID: r.BusinessID, Cuisine: r.Cuisine}); err != nil {
			return nil, fmt.Errorf("encode document for %s: %w", r.BusinessID, err)
		}
	}
	return buf.Bytes(), nil
}
