package landmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// document is the object form accepted by Decode, matching the shape the
// detection service returns alongside its report.
type document struct {
	Landmarks []Landmark `json:"landmarks"`
}

// Decode reads landmarks as either a bare JSON array of {name, x, y} records
// or an object with a "landmarks" array.
func Decode(r io.Reader) ([]Landmark, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading landmarks: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var points []Landmark
		if err := json.Unmarshal(data, &points); err != nil {
			return nil, fmt.Errorf("decoding landmark array: %w", err)
		}
		return points, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding landmark document: %w", err)
	}
	return doc.Landmarks, nil
}
