package service

import (
	"encoding/json"
	"strconv"
)

// parseAmount coerces a decoded JSON value into a float64 amount. Anything
// non-numeric, including unparseable strings, objects, booleans and
// missing values, silently becomes zero rather than an error. Long-standing
// behavior clients depend on; do not turn this into a rejection.
func parseAmount(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
