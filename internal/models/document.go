// Package models defines core data structures for documents, queries, and search results.
package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// FieldKind identifies the variant held by a FieldValue.
type FieldKind int

const (
	// FieldText is free text; the only kind that is tokenized and n-gram indexed.
	FieldText FieldKind = iota
	// FieldNumber is a 64-bit float.
	FieldNumber
	// FieldBoolean is true/false.
	FieldBoolean
	// FieldDate is epoch seconds.
	FieldDate
	// FieldArray is a list of strings.
	FieldArray
	// FieldObject is a nested JSON object.
	FieldObject
)

// String returns a string representation of the field kind.
func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldNumber:
		return "number"
	case FieldBoolean:
		return "boolean"
	case FieldDate:
		return "date"
	case FieldArray:
		return "array"
	case FieldObject:
		return "object"
	default:
		return "unknown"
	}
}

// FieldValue is a closed sum type over the shapes a document field can take.
// Only the types declared in this file implement it.
type FieldValue interface {
	Kind() FieldKind
	isFieldValue()
}

// Text is a tokenized text field.
type Text string

// Number is a numeric field.
type Number float64

// Boolean is a boolean field.
type Boolean bool

// Date is a date field in epoch seconds.
type Date uint64

// Array is a list of strings.
type Array []string

// Object is a nested JSON object.
type Object map[string]interface{}

func (Text) Kind() FieldKind    { return FieldText }
func (Number) Kind() FieldKind  { return FieldNumber }
func (Boolean) Kind() FieldKind { return FieldBoolean }
func (Date) Kind() FieldKind    { return FieldDate }
func (Array) Kind() FieldKind   { return FieldArray }
func (Object) Kind() FieldKind  { return FieldObject }

func (Text) isFieldValue()    {}
func (Number) isFieldValue()  {}
func (Boolean) isFieldValue() {}
func (Date) isFieldValue()    {}
func (Array) isFieldValue()   {}
func (Object) isFieldValue()  {}

// FieldValueFromJSON maps a decoded JSON value (or a native Go value of the same shape)
// to a FieldValue. Null and arrays holding non-string elements have no mapping and
// return ErrUnsupportedFieldValue.
func FieldValueFromJSON(v interface{}) (FieldValue, error) {
	switch x := v.(type) {
	case FieldValue:
		return x, nil
	case string:
		return Text(x), nil
	case bool:
		return Boolean(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(x), nil
	case int:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case int64:
		return Number(x), nil
	case uint64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFieldValue, x.String())
		}
		return Number(f), nil
	case time.Time:
		return Date(x.Unix()), nil
	case []string:
		return Array(append([]string(nil), x...)), nil
	case []interface{}:
		out := make(Array, 0, len(x))
		for i, el := range x {
			s, ok := el.(string)
			if !ok {
				return nil, fmt.Errorf("%w: array element %d is %T", ErrUnsupportedFieldValue, i, el)
			}
			out = append(out, s)
		}
		return out, nil
	case map[string]interface{}:
		return Object(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFieldValue, v)
	}
}

// IndexedDocument is a document held by the search index.
type IndexedDocument struct {
	ID        string                 `json:"id"`
	Fields    map[string]FieldValue  `json:"fields"`
	Metadata  map[string]interface{} `json:"metadata"`
	Embedding []float32              `json:"-"`
	CreatedAt int64                  `json:"created_at"`
	UpdatedAt int64                  `json:"updated_at"`
}

// TextFieldNames returns the names of the Text fields in sorted order.
func (d *IndexedDocument) TextFieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name, v := range d.Fields {
		if _, ok := v.(Text); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FieldNames returns all field names in sorted order.
func (d *IndexedDocument) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DocumentInput is the input for indexing or re-indexing a document.
type DocumentInput struct {
	ID       string                 `json:"id,omitempty"`
	Fields   map[string]interface{} `json:"fields"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ConvertFields converts every input field to a FieldValue. It fails on the first
// unsupported shape and returns no partial result.
func ConvertFields(fields map[string]interface{}) (map[string]FieldValue, error) {
	out := make(map[string]FieldValue, len(fields))
	for name, raw := range fields {
		v, err := FieldValueFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
