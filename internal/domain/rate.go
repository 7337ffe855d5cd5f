package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	FieldName  = "name"
	FieldType  = "type"
	FieldUnit  = "unit"
	FieldValue = "value"
)

// Rate is one entry of the exchange-rate dataset.
type Rate struct {
	Name  string
	Type  string
	Unit  string
	Value decimal.Decimal

	// fields present in the source object, in source order
	keys []string
}

// NewRate builds a rate with every field present, in the order the
// upstream API sends them.
func NewRate(name, unit string, value decimal.Decimal, typ string) Rate {
	return Rate{
		Name:  name,
		Type:  typ,
		Unit:  unit,
		Value: value,
		keys:  []string{FieldName, FieldUnit, FieldValue, FieldType},
	}
}

func (r Rate) Keys() []string {
	return slices.Clone(r.keys)
}

func (r Rate) Has(key string) bool {
	return slices.Contains(r.keys, key)
}

// Lookup returns the textual form of a present field.
func (r Rate) Lookup(key string) (string, bool) {
	if !r.Has(key) {
		return "", false
	}
	switch key {
	case FieldName:
		return r.Name, true
	case FieldType:
		return r.Type, true
	case FieldUnit:
		return r.Unit, true
	case FieldValue:
		return r.Value.String(), true
	}
	return "", false
}

// Number returns the numeric form of a present numeric field.
func (r Rate) Number(key string) (decimal.Decimal, bool) {
	if key != FieldValue || !r.Has(key) {
		return decimal.Decimal{}, false
	}
	return r.Value, true
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = Rate{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: rate must be an object, got %v", ErrMalformedPayload, tok)
	}

	var out Rate
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return err
		}
		if isNull(raw) || out.Has(key) {
			continue
		}

		switch key {
		case FieldName:
			err = json.Unmarshal(raw, &out.Name)
		case FieldType:
			err = json.Unmarshal(raw, &out.Type)
		case FieldUnit:
			err = json.Unmarshal(raw, &out.Unit)
		case FieldValue:
			err = out.Value.UnmarshalJSON(raw)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrMalformedPayload, key, err)
		}
		out.keys = append(out.keys, key)
	}

	if _, err = dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
