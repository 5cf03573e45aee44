package applications

import (
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes the full collection as a JSON array.
func EncodeSnapshot(apps []Application) ([]byte, error) {
	if apps == nil {
		apps = []Application{}
	}
	data, err := json.Marshal(apps)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored collection. Enum fields are taken verbatim;
// a JSON null decodes to an empty collection.
func DecodeSnapshot(data []byte) ([]Application, error) {
	var apps []Application
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if apps == nil {
		apps = []Application{}
	}
	return apps, nil
}
