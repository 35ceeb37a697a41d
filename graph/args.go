package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Argument values arrive either from literals (int64, float64, string) or from coerced
// JSON variables (float64, json.Number, int).

func requiredString(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optionalString(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalInt(args map[string]interface{}, name string) (*int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	var v int
	switch n := raw.(type) {
	case int:
		v = n
	case int32:
		v = int(n)
	case int64:
		v = int(n)
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("argument %s must be an integer, got %v", name, n)
		}
		v = int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("argument %s must be an integer, got %s", name, n)
		}
		v = int(i)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return nil, fmt.Errorf("argument %s must be an integer, got %q", name, n)
		}
		v = i
	default:
		return nil, fmt.Errorf("argument %s must be an integer, got %T", name, raw)
	}
	return &v, nil
}

func floatArg(args map[string]interface{}, name string) (float64, error) {
	switch n := args[name].(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("argument %s must be a number, got %s", name, n)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %s must be a number, got %q", name, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %s is required", name)
	}
}
