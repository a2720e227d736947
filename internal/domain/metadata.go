package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type MetadataKind int

const (
	MetadataString MetadataKind = iota
	MetadataJSON
)

// MetadataValue is one entry of an item's metadata bag. Incoming values are
// classified once, at the decoding boundary: plain JSON strings stay strings,
// everything else (numbers, objects, arrays, booleans) is kept as raw JSON.
// Consumers switch on Kind instead of type-asserting an any.
type MetadataValue struct {
	Kind MetadataKind
	Str  string
	JSON json.RawMessage
}

func StringValue(s string) MetadataValue {
	return MetadataValue{Kind: MetadataString, Str: s}
}

func JSONValue(raw json.RawMessage) MetadataValue {
	return MetadataValue{Kind: MetadataJSON, JSON: raw}
}

func (v MetadataValue) MarshalJSON() ([]byte, error) {
	if v.Kind == MetadataString {
		return json.Marshal(v.Str)
	}
	if len(v.JSON) == 0 {
		return []byte("null"), nil
	}
	return v.JSON, nil
}

func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid metadata value: %s", string(data))
	}
	raw := make(json.RawMessage, len(data))
	copy(raw, data)
	*v = JSONValue(raw)
	return nil
}

// Metadata maps string keys to tagged values. Insertion order is not
// significant.
type Metadata map[string]MetadataValue

// Value implements driver.Valuer so Metadata persists as jsonb.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported metadata column type")
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// GormDataType tells GORM which column type to use.
func (Metadata) GormDataType() string {
	return "jsonb"
}
