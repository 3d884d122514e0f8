package odoo

import (
	"fmt"
	"math"
)

// Record is one row of a search_read reply, keyed by field name.
//
// Odoo sends boolean false for empty non-boolean fields. The accessors treat
// false, nil and a missing key alike and return a nil pointer.
type Record map[string]any

// ID returns the record's integer id. It is the only field the sync cannot do
// without.
func (r Record) ID() (int64, error) {
	v, ok := r["id"]
	if !ok {
		return 0, fmt.Errorf("record has no id")
	}
	switch id := v.(type) {
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	case float64:
		if id == math.Trunc(id) {
			return int64(id), nil
		}
	}
	return 0, fmt.Errorf("record id has unexpected type %T", v)
}

func (r Record) String(field string) *string {
	switch v := r[field].(type) {
	case string:
		return &v
	default:
		return nil
	}
}

func (r Record) Float(field string) *float64 {
	switch v := r[field].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
