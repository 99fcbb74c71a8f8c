package etl

import "dining-concierge/internal/models"

// DefaultMaxKeep caps the cleaned dataset.
const DefaultMaxKeep = 150

// Clean drops repeated BusinessIDs, keeping the first occurrence, then truncates to max
// records. A non-positive max keeps everything.
func Clean(records []models.RestaurantRecord, max int) []models.RestaurantRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.RestaurantRecord, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.BusinessID]; dup {
			continue
		}
		seen[r.BusinessID] = struct{}{}
		out = append(out, r)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
