package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Record is one café seed row.
type Record struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	LocationTags []string `json:"location_tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// LoadFromJSONL loads seed records from a JSONL file. Malformed or
// nameless lines are skipped with a warning; a file with no valid
// records is an error.
func LoadFromJSONL(path string, logger *zap.Logger) ([]Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var records []Record
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn("skipping malformed seed line",
				zap.Int("line", i+1),
				zap.String("file", path),
				zap.Error(err))
			continue
		}
		if rec.Name == "" {
			logger.Warn("skipping nameless seed line",
				zap.Int("line", i+1),
				zap.String("file", path))
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", path)
	}

	return records, nil
}
