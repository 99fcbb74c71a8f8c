package etl

import (
	"context"
	"errors"
	"testing"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	put    []string
	failOn string
}

func (s *recordingStore) GetByBusinessID(context.Context, string) ([]models.RestaurantRecord, error) {
	return nil, nil
}

func (s *recordingStore) Put(_ context.Context, r models.RestaurantRecord) error {
	if r.BusinessID == s.failOn {
		return errors.New("ProvisionedThroughputExceededException")
	}
	s.put = append(s.put, r.BusinessID)
	return nil
}

func TestUpload(t *testing.T) {
	store := &recordingStore{}
	records := []models.RestaurantRecord{{BusinessID: "a"}, {BusinessID: "b"}}

	n, err := Upload(context.Background(), store, records, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, store.put)
}

func TestUpload_StopsAtFirstFailure(t *testing.T) {
	store := &recordingStore{failOn: "b"}
	records := []models.RestaurantRecord{{BusinessID: "a"}, {BusinessID: "b"}, {BusinessID: "c"}}

	n, err := Upload(context.Background(), store, records, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a"}, store.put)
}
