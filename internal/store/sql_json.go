package store

import (
	"encoding/json"
	"fmt"

	"github.com/edusync/statesync/models"
)

// Helpers for moving field maps and string lists through jsonb columns.

func marshalFieldMap(m models.FieldMap) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal field map: %w", err)
	}
	return data, nil
}

func unmarshalFieldMap(data []byte) (models.FieldMap, error) {
	if len(data) == 0 {
		return models.FieldMap{}, nil
	}

	var m models.FieldMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal field map: %w", err)
	}
	if m == nil {
		m = models.FieldMap{}
	}
	return m, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return data, nil
}

func unmarshalStrings(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	return values, nil
}
