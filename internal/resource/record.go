package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
)

// Record is one item of a collection. The view never validates its schema;
// numbers are kept as json.Number so they display exactly as sent.
type Record map[string]any

var errTrailingData = errors.New("invalid character after top-level value")

// Decode parses a response body into a generic JSON value.
func Decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return payload, nil
}

// Normalize extracts the item list from a decoded payload. A bare array is
// used as-is; an object is unwrapped through its "results" field. ok is false
// when neither is a list, in which case items is empty (never nil).
// Non-object elements become empty records so every position still renders.
func Normalize(payload any) (items []Record, ok bool) {
	candidate := payload
	if obj, isObj := payload.(map[string]any); isObj {
		if results, has := obj["results"]; has && Truthy(results) {
			candidate = results
		}
	}

	list, isList := candidate.([]any)
	if !isList {
		return []Record{}, false
	}

	items = make([]Record, 0, len(list))
	for _, el := range list {
		if obj, isObj := el.(map[string]any); isObj {
			items = append(items, Record(obj))
			continue
		}
		items = append(items, Record{})
	}
	return items, true
}

// Truthy reports whether v would pass a JavaScript `||` fallback: nil, false,
// zero and the empty string do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return err != nil || f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
