package conv

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AsInt coerces numeric values into int, it returns 0 for unsupported values
func AsInt(v any) int {
	ret, _ := ToInt(v)
	return ret
}

// ToInt coerces numeric values into int
func ToInt(v any) (int, bool) {
	switch actual := v.(type) {
	case int:
		return actual, true
	case int8:
		return int(actual), true
	case int16:
		return int(actual), true
	case int32:
		return int(actual), true
	case int64:
		return int(actual), true
	case uint:
		return int(actual), true
	case uint8:
		return int(actual), true
	case uint16:
		return int(actual), true
	case uint32:
		return int(actual), true
	case uint64:
		return int(actual), true
	case float32:
		return int(actual), float32(int(actual)) == actual
	case float64:
		return int(actual), math.Trunc(actual) == actual
	case json.Number:
		if i, err := actual.Int64(); err == nil {
			return int(i), true
		}
		if f, err := actual.Float64(); err == nil && math.Trunc(f) == f {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(actual); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ToFloat coerces numeric values into float64
func ToFloat(v any) (float64, bool) {
	switch actual := v.(type) {
	case float64:
		return actual, true
	case float32:
		return float64(actual), true
	case json.Number:
		f, err := actual.Float64()
		return f, err == nil
	}
	if i, ok := ToInt(v); ok {
		if _, isString := v.(string); !isString {
			return float64(i), true
		}
	}
	return 0, false
}

// ToFloats coerces a sequence of numbers into []float64
func ToFloats(v any) ([]float64, bool) {
	switch actual := v.(type) {
	case []float64:
		return actual, true
	case []any:
		ret := make([]float64, 0, len(actual))
		for _, item := range actual {
			f, ok := ToFloat(item)
			if !ok {
				return nil, false
			}
			ret = append(ret, f)
		}
		return ret, true
	}
	return nil, false
}

// AsString returns string values as is and formats anything else
func AsString(v any) string {
	switch actual := v.(type) {
	case nil:
		return ""
	case string:
		return actual
	case json.Number:
		return actual.String()
	}
	return fmt.Sprintf("%v", v)
}

// IsNumber returns true for any numeric value
func IsNumber(v any) bool {
	if _, isString := v.(string); isString {
		return false
	}
	_, ok := ToFloat(v)
	return ok
}

// IsInteger returns true for numeric values without fraction
func IsInteger(v any) bool {
	if _, isString := v.(string); isString {
		return false
	}
	_, ok := ToInt(v)
	return ok
}
