package jsonmap

import (
	"gorm.io/datatypes"
)

// FromMap converts a plain map into a GORM JSON map value.
// Nil maps become empty JSON objects so columns never store null.
func FromMap(values map[string]interface{}) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for key, value := range values {
		out[key] = value
	}
	return out
}

// ToMap converts a JSON map back into a plain map.
func ToMap(values datatypes.JSONMap) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}
