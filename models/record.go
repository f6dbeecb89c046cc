package models

import (
	"fmt"
	"time"
)

// Record is one entity snapshot from the document store: a mapping from field
// name to JSON-compatible value. The record's store key is carried in the "id"
// field after loading.
type Record map[string]interface{}

// ID returns the record's store key.
func (r Record) ID() string {
	return r.String("id")
}

// String returns the named field rendered as text. Missing fields and nil
// values come back as the empty string, never as a "nil" literal.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Bool reports whether the named field holds boolean true.
func (r Record) Bool(field string) bool {
	v, ok := r[field]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Timestamp layouts accepted for date fields pushed by the store. The
// original data mixes full RFC3339 stamps with bare dates.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses the named field as a timestamp. The boolean result is false
// when the field is absent, empty, or unparseable.
func (r Record) Time(field string) (time.Time, bool) {
	s := r.String(field)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CollectionToRecords flattens a store collection snapshot (key -> fields)
// into a slice of Records, stamping each record's key into its "id" field.
// Order follows the keys slice so callers control ordering.
func CollectionToRecords(keys []string, snapshot map[string]map[string]interface{}) []Record {
	records := make([]Record, 0, len(snapshot))
	for _, key := range keys {
		fields := snapshot[key]
		rec := make(Record, len(fields)+1)
		for k, v := range fields {
			rec[k] = v
		}
		rec["id"] = key
		records = append(records, rec)
	}
	return records
}
