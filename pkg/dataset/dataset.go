// pkg/dataset/dataset.go
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dining-concierge/internal/models"
)

// Load reads a JSON array of restaurant records.
func Load(path string) ([]models.RestaurantRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.RestaurantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// Save writes records as an indented JSON array, creating the directory if needed.
func Save(path string, records []models.RestaurantRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	return WriteFile(path, data)
}

// WriteFile writes raw bytes to path, creating the directory if needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
