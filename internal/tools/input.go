package tools

import (
	"fmt"
	"strings"
)

// Float64Param extracts a required numeric parameter from tool input.
// JSON numbers decode as float64; integers sent by the model are accepted too.
func Float64Param(input map[string]any, key string) (float64, error) {
	v, ok := input[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing required parameter: %s (number)", ErrInvalidInput, key)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: parameter %s must be a number, got %T", ErrInvalidInput, key, v)
	}
}

// StringParam extracts a required non-blank string parameter from tool input.
func StringParam(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required parameter: %s (string)", ErrInvalidInput, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %s must be a string, got %T", ErrInvalidInput, key, v)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: parameter %s must not be empty", ErrInvalidInput, key)
	}

	return s, nil
}
