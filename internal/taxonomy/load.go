package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile builds a Taxonomy from a JSON file holding an array of categories
// in the same shape Categories returns.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
	}
	if len(categories) == 0 {
		return nil, &DefinitionError{Message: "taxonomy file defines no categories"}
	}
	return New(categories)
}
