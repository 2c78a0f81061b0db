package models

import (
	"fmt"
	"strconv"
)

// Provider type discriminators.
const (
	ProviderTypeAlert = "alert"
	ProviderTypeLog   = "log"
)

// Provider field value types.
const (
	FieldTypeString = "string"
	FieldTypeNumber = "number"
	FieldTypeBool   = "bool"
)

// Provider is an admin-configured integration profile for an alerting or
// logging backend, composed of typed key/value fields.
type Provider struct {
	UUID   string          `json:"uuid"`
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Fields []ProviderField `json:"fields"`
}

// Field returns the field with the given key, if present.
func (p Provider) Field(key string) (ProviderField, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return ProviderField{}, false
}

// Enabled reports whether the provider carries an "enabled" field that
// parses to true. Providers without the field are treated as disabled.
func (p Provider) Enabled() bool {
	f, ok := p.Field("enabled")
	if !ok {
		return false
	}
	v, err := f.TypedValue()
	if err != nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// ProviderField is one typed key/value entry of a provider. Value is
// always transported as a string; Type says how to interpret it.
type ProviderField struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// TypedValue converts the wire string into its declared type: string,
// float64 for "number" or bool for "bool". Conversion happens here, at
// the boundary, instead of ad hoc parsing at each point of use.
func (f ProviderField) TypedValue() (any, error) {
	switch f.Type {
	case FieldTypeString:
		return f.Value, nil
	case FieldTypeNumber:
		n, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value")
		}
		return n, nil
	case FieldTypeBool:
		b, err := strconv.ParseBool(f.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool value")
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown field type %q", f.Type)
	}
}
