package docfill

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ParseValues decodes a JSON object into placeholder values. Strings are
// taken as is, numbers and booleans keep their JSON spelling, null becomes
// empty and nested objects or arrays are kept as compact JSON. Empty input
// yields an empty map.
func ParseValues(data []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, newError(ErrInvalidValues, "", err)
	}
	if obj == nil {
		return nil, newError(ErrInvalidValues, "got null", nil)
	}

	values := make(map[string]string, len(obj))
	for k, v := range obj {
		switch v := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = v
		case json.Number:
			values[k] = v.String()
		case bool:
			values[k] = strconv.FormatBool(v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, newError(ErrInvalidValues, k, err)
			}
			values[k] = string(b)
		}
	}
	return values, nil
}
