package source

import (
	"bytes"
	"math"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// Upstream documents are decoded into a loosely-typed tree and read through
// the accessors below. Every accessor tolerates a missing or mistyped node and
// returns the zero value, so absent fields degrade to empty collections.

var xssiPrefix = []byte(")]}'")

// decodeTree parses a JSON document, dropping the anti-XSSI prefix some
// upstreams put in front of it.
func decodeTree(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if rest, ok := bytes.CutPrefix(body, xssiPrefix); ok {
		body = bytes.TrimLeft(rest, ", \r\n\t")
	}
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}
	return root, nil
}

// field returns obj[key], or nil when v is not an object
func field(v any, key string) any {
	obj, _ := v.(map[string]any)
	return obj[key]
}

// path walks nested objects
func path(v any, keys ...string) any {
	for _, k := range keys {
		v = field(v, k)
	}
	return v
}

// list returns v as an array, or nil
func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// index returns the i-th element of an array node, or nil
func index(v any, i int) any {
	l := list(v)
	if i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

// text renders a scalar node as a string; nil and containers become ""
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// firstText returns the first present key of obj rendered as text
func firstText(obj any, keys ...string) string {
	for _, k := range keys {
		if v := field(obj, k); v != nil {
			return text(v)
		}
	}
	return ""
}

// number reads a numeric node; numeric strings are accepted, anything else is 0
func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// score reads a node already on the 0-100 index scale, rounded and clamped
func score(v any) int {
	f := number(v)
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}
