package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadRawJSON loads a JSON file from disk without decoding it.
func ReadRawJSON(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("file %q is not valid JSON", filePath)
	}
	return data, nil
}
