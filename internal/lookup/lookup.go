// Package lookup resolves dotted paths in untyped params: generic maps and
// slices as decoded from JSON or YAML, plus structs by exported field name.
package lookup

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Path walks root along dotted path segments ("params.more_information.text").
// Maps with string keys are indexed by key, slices and arrays by decimal index,
// structs by exported field name.
// Reports false when any segment is missing.
func Path(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := root
	for seg := range strings.SplitSeq(path, ".") {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func step(v any, seg string) (any, bool) {
	if seg == "" || v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		next, ok := m[seg]
		return next, ok
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(seg)
		if !ok || !f.IsExported() {
			return nil, false
		}
		val, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

// Format renders a scalar for plain substitution. Strings and byte slices are
// written verbatim, nil becomes the empty string, fmt.Stringer is honored and
// everything else uses fmt's default formatting.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
