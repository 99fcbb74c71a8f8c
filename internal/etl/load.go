package etl

import (
	"context"
	"fmt"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	"dining-concierge/internal/repository"
)

// Upload puts every record into the restaurant store and stops at the first failure.
// It returns how many records were written.
func Upload(ctx context.Context, store repository.RestaurantRepository, records []models.RestaurantRecord, log logger.Logger) (int, error) {
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := store.Put(ctx, r); err != nil {
			return i, fmt.Errorf("upload %s: %w", r.BusinessID, err)
		}
		log.Debug("uploaded restaurant", map[string]interface{}{
			"businessId": r.BusinessID,
			"name":       r.Name,
		})
	}
	log.Info("upload complete", map[string]interface{}{"count": len(records)})
	return len(records), nil
}
