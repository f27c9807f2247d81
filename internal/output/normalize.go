package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/samber/lo"
)

// resultMetadata is the SDK's per-response middleware metadata field.
const resultMetadata = "ResultMetadata"

// normalize converts a projected output into plain maps, slices and
// scalars. Absent fields, unset enums and empty containers are dropped,
// as is the SDK's ResultMetadata. A nil or empty list stays an empty list;
// the boolean is false when there is nothing to render at all.
func normalize(v any) (any, bool, error) {
	if lo.IsNil(v) {
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Slice {
			return []any{}, true, nil
		}
		return nil, false, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode output: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, false, fmt.Errorf("failed to decode output: %w", err)
	}

	if m, ok := generic.(map[string]any); ok {
		delete(m, resultMetadata)
	}
	pruned, keep := prune(generic)
	switch pruned.(type) {
	case map[string]any, []any:
		return pruned, true, nil
	}
	return pruned, keep, nil
}

// prune removes nulls, empty strings and empty containers. The boolean is
// false when v itself should be dropped.
func prune(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case map[string]any:
		for k, child := range v {
			if p, keep := prune(child); keep {
				v[k] = p
			} else {
				delete(v, k)
			}
		}
		return v, len(v) > 0
	case []any:
		out := v[:0]
		for _, child := range v {
			if p, keep := prune(child); keep {
				out = append(out, p)
			}
		}
		return out, len(out) > 0
	default:
		return v, true
	}
}
