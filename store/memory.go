package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"handyhub/backend/models"
)

// Memory is an in-process Store used when no database URL is configured
// (development mode) and by tests. It mirrors Firebase's snapshot semantics:
// reads return copies, so callers never observe in-place mutation.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{}
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]map[string]interface{})}
}

func (m *Memory) Collection(_ context.Context, path string) ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]map[string]interface{}, len(m.data[path]))
	for id, fields := range m.data[path] {
		snapshot[id] = copyFields(fields)
	}
	return sortedRecords(snapshot), nil
}

func (m *Memory) Get(_ context.Context, path, id string) (models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.data[path][id]
	if !ok {
		return nil, nil
	}
	rec := models.Record(copyFields(fields))
	rec["id"] = id
	return rec, nil
}

func (m *Memory) Update(_ context.Context, path, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.data[path]
	if !ok {
		return fmt.Errorf("collection %s not found", path)
	}
	rec, ok := coll[id]
	if !ok {
		return fmt.Errorf("record %s/%s not found", path, id)
	}
	for k, v := range fields {
		rec[k] = v
	}
	return nil
}

func (m *Memory) Set(_ context.Context, path, id string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fields, err := toFields(value)
	if err != nil {
		return err
	}
	if m.data[path] == nil {
		m.data[path] = make(map[string]map[string]interface{})
	}
	m.data[path][id] = fields
	return nil
}

func (m *Memory) Remove(_ context.Context, path, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[path], id)
	return nil
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func toFields(value interface{}) (map[string]interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		return copyFields(v), nil
	case models.Record:
		return copyFields(v), nil
	default:
		// Mirror the wire behavior: arbitrary values round-trip through JSON
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("unsupported record value %T: %w", value, err)
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("unsupported record value %T: %w", value, err)
		}
		return fields, nil
	}
}
