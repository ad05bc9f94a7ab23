package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/storelens"
)

// Fingerprint returns a content hash of insights. Identity and timestamp
// fields are ignored, so two extractions of an unchanged storefront hash
// identically.
func Fingerprint(insights *storelens.BrandInsights) (string, error) {
	c := *insights
	c.ID = ""
	c.Fingerprint = ""
	c.ExtractionTimestamp = time.Time{}
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}

	b, err := json.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("failed to encode insights: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}
