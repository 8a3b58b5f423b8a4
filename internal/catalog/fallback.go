package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fallback_resorts.json
var fallbackJSON []byte

// Fallback returns the resort list shipped with the binary. It is used when
// the database is unreachable and to fill gaps in remote rows.
func Fallback() ([]Resort, error) {
	return Decode(fallbackJSON)
}

// Decode parses a JSON array of resorts and validates each entry.
func Decode(data []byte) ([]Resort, error) {
	var resorts []Resort
	if err := json.Unmarshal(data, &resorts); err != nil {
		return nil, fmt.Errorf("catalog: decode resorts: %w", err)
	}
	for i, r := range resorts {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: resort %d: %w", i, err)
		}
	}
	return resorts, nil
}
